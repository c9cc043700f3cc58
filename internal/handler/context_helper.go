package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhive-labs/studyhive-api/internal/middleware"
	"github.com/studyhive-labs/studyhive-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.TokenClaims {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return nil
	}
	return claims
}

func roleFromContext(c *gin.Context) models.Role {
	return middleware.CurrentRole(c)
}
