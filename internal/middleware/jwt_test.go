package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

type fakeVerifier struct {
	claims    *models.TokenClaims
	err       error
	lastToken string
}

func (f *fakeVerifier) VerifyToken(token string) (*models.TokenClaims, error) {
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func newJWTRouter(verifier *fakeVerifier, invoked *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWT(verifier, "session"))
	r.GET("/protected", func(c *gin.Context) {
		*invoked = true
		claims, ok := CurrentClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	return r
}

func TestJWTAcceptsCookie(t *testing.T) {
	verifier := &fakeVerifier{claims: &models.TokenClaims{Email: "u@example.com"}}
	invoked := false
	r := newJWTRouter(verifier, &invoked)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, invoked)
	assert.Equal(t, "cookie-token", verifier.lastToken)
	assert.Contains(t, w.Body.String(), "u@example.com")
}

func TestJWTAcceptsBearerHeader(t *testing.T) {
	verifier := &fakeVerifier{claims: &models.TokenClaims{Email: "u@example.com"}}
	invoked := false
	r := newJWTRouter(verifier, &invoked)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "header-token", verifier.lastToken)
}

func TestJWTCookieTakesPrecedenceOverHeader(t *testing.T) {
	verifier := &fakeVerifier{claims: &models.TokenClaims{Email: "u@example.com"}}
	invoked := false
	r := newJWTRouter(verifier, &invoked)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "cookie-token", verifier.lastToken)
}

func TestJWTMissingTokenBlocksHandler(t *testing.T) {
	verifier := &fakeVerifier{claims: &models.TokenClaims{Email: "u@example.com"}}
	invoked := false
	r := newJWTRouter(verifier, &invoked)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, invoked)
	assert.Empty(t, verifier.lastToken)
}

func TestJWTInvalidTokenBlocksHandler(t *testing.T) {
	verifier := &fakeVerifier{err: appErrors.ErrUnauthorized}
	invoked := false
	r := newJWTRouter(verifier, &invoked)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, invoked)
}

func TestJWTMalformedAuthorizationHeaderIsRejected(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("should not be called")}
	invoked := false
	r := newJWTRouter(verifier, &invoked)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, verifier.lastToken)
}
