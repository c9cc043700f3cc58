package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	"github.com/studyhive-labs/studyhive-api/internal/service"
)

type fakeListingUserRepo struct {
	users      []models.User
	lastParams models.ListingParams
	lastRole   models.Role
}

func (f *fakeListingUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeListingUserRepo) Create(context.Context, *models.User) error { return nil }

func (f *fakeListingUserRepo) UpdateStatus(context.Context, string, string) error { return nil }

func (f *fakeListingUserRepo) UpdateRole(context.Context, string, models.Role) error { return nil }

func (f *fakeListingUserRepo) List(_ context.Context, params models.ListingParams, role models.Role) ([]models.User, int, error) {
	f.lastParams = params
	f.lastRole = role
	return f.users, len(f.users), nil
}

func newUserListContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, rec
}

func TestUserHandlerListAppliesRoleFilter(t *testing.T) {
	repo := &fakeListingUserRepo{users: []models.User{{Email: "t@example.com", Role: models.RoleTutor}}}
	handler := NewUserHandler(service.NewUserService(repo, nil, nil))

	c, rec := newUserListContext(t, "/users?filter=tutor")
	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleTutor, repo.lastRole)
}

func TestUserHandlerListUnknownFilterMatchesAll(t *testing.T) {
	repo := &fakeListingUserRepo{}
	handler := NewUserHandler(service.NewUserService(repo, nil, nil))

	c, rec := newUserListContext(t, "/users?filter=janitor")
	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleUnset, repo.lastRole)
}

func TestUserHandlerTutorsAlwaysScopedToTutors(t *testing.T) {
	repo := &fakeListingUserRepo{}
	handler := NewUserHandler(service.NewUserService(repo, nil, nil))

	c, rec := newUserListContext(t, "/tutors?search=smith")
	handler.Tutors(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleTutor, repo.lastRole)
	assert.Equal(t, "smith", repo.lastParams.Search)
}
