package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhive-labs/studyhive-api/internal/service"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
	"github.com/studyhive-labs/studyhive-api/pkg/response"
)

// ReviewHandler exposes session review endpoints.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Create godoc
// @Summary Post a review for a session
// @Tags Reviews
// @Accept json
// @Produce json
// @Param payload body service.CreateReviewRequest true "Review payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), claims.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, review)
}

// ListBySession godoc
// @Summary List reviews for a session
// @Tags Reviews
// @Produce json
// @Param session_id query string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reviews [get]
func (h *ReviewHandler) ListBySession(c *gin.Context) {
	reviews, err := h.reviews.ListBySession(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reviews, nil)
}
