package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	"github.com/studyhive-labs/studyhive-api/internal/service"
	"github.com/studyhive-labs/studyhive-api/pkg/config"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
	"github.com/studyhive-labs/studyhive-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	auth  *service.AuthService
	users *service.UserService
	cfg   *config.Config
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(auth *service.AuthService, users *service.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, cfg: cfg}
}

// Token godoc
// @Summary Sign in and issue an access token
// @Description Upserts the user record for the asserted identity and returns a long-lived JWT, also set as a session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.SignInRequest true "Sign-in payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid sign-in payload"))
		return
	}

	if _, err := h.users.Upsert(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	token, expiresAt, err := h.auth.IssueToken(req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, token, int(time.Until(expiresAt).Seconds()))
	response.JSON(c, http.StatusOK, models.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil)
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.JSON(c, http.StatusOK, gin.H{"message": "logged out"}, nil)
}

// Me godoc
// @Summary Get the authenticated identity
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	user, err := h.users.Get(c.Request.Context(), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Browsers require SameSite=None with Secure for cross-site cookies, which
// only works over HTTPS. Local development falls back to Lax.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	secure := h.cfg.Env == "production"
	if secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cfg.Auth.CookieName, token, maxAge, "/", "", secure, true)
}
