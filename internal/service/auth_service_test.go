package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

type fakeAuthUserRepo struct {
	user *models.User
	err  error
}

func (f *fakeAuthUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func newAuthService(repo authUserRepository, expiry time.Duration) *AuthService {
	return NewAuthService(repo, nil, AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: expiry,
		Issuer:      "studyhive-test",
	})
}

func TestAuthServiceIssueAndVerify(t *testing.T) {
	svc := newAuthService(&fakeAuthUserRepo{}, time.Hour)

	token, expiresAt, err := svc.IssueToken("student@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", claims.Email)
	assert.Equal(t, "studyhive-test", claims.Issuer)
}

func TestAuthServiceDefaultExpiryIsOneYear(t *testing.T) {
	svc := newAuthService(&fakeAuthUserRepo{}, 0)

	_, expiresAt, err := svc.IssueToken("student@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(365*24*time.Hour), expiresAt, 5*time.Second)
}

func TestAuthServiceVerifyFailuresAreUniform(t *testing.T) {
	svc := newAuthService(&fakeAuthUserRepo{}, time.Hour)

	other := newAuthService(&fakeAuthUserRepo{}, time.Hour)
	other.config.TokenSecret = "wrong-secret"
	foreign, _, err := other.IssueToken("student@example.com")
	require.NoError(t, err)

	expiredSvc := newAuthService(&fakeAuthUserRepo{}, time.Hour)
	expiredSvc.config.TokenExpiry = -time.Minute
	expired, _, err := expiredSvc.IssueToken("student@example.com")
	require.NoError(t, err)

	cases := map[string]string{
		"empty":           "",
		"garbage":         "not.a.jwt",
		"wrong signature": foreign,
		"expired":         expired,
	}
	for name, token := range cases {
		_, err := svc.VerifyToken(token)
		require.Error(t, err, name)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code, name)
		assert.Equal(t, appErrors.ErrUnauthorized.Status, appErr.Status, name)
		assert.Equal(t, appErrors.ErrUnauthorized.Message, appErr.Message, name)
	}
}

func TestAuthServiceResolveRole(t *testing.T) {
	svc := newAuthService(&fakeAuthUserRepo{user: &models.User{Email: "t@example.com", Role: models.RoleTutor}}, time.Hour)
	role, err := svc.ResolveRole(context.Background(), "t@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTutor, role)
}

func TestAuthServiceResolveRoleMissingUserIsUnset(t *testing.T) {
	svc := newAuthService(&fakeAuthUserRepo{err: sql.ErrNoRows}, time.Hour)
	role, err := svc.ResolveRole(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUnset, role)
}

func TestAuthServiceResolveRoleLookupFailureIsAnError(t *testing.T) {
	svc := newAuthService(&fakeAuthUserRepo{err: errors.New("connection reset")}, time.Hour)
	role, err := svc.ResolveRole(context.Background(), "t@example.com")
	require.Error(t, err)
	assert.Equal(t, models.RoleUnset, role)
}
