package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateStatus(ctx context.Context, email, status string) error
	UpdateRole(ctx context.Context, email string, role models.Role) error
	List(ctx context.Context, params models.ListingParams, role models.Role) ([]models.User, int, error)
}

// UpdateRoleRequest is the payload for the admin role-assignment endpoint.
type UpdateRoleRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=student tutor admin"`
}

// UserService handles principal management workflows.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Upsert implements the sign-in flow. A first sign-in creates the principal
// with an unset role and a registration timestamp. A repeat sign-in returns
// the stored record untouched, unless the caller is asking for a role
// upgrade, which only persists the request marker.
func (s *UserService) Upsert(ctx context.Context, req models.SignInRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sign-in payload")
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		if req.Status == models.StatusRoleRequested && existing.Status != models.StatusRoleRequested {
			if err := s.repo.UpdateStatus(ctx, req.Email, req.Status); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record role request")
			}
			existing.Status = req.Status
		}
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up user")
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PhotoURL:     req.PhotoURL,
		Role:         models.RoleUnset,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}
	return user, nil
}

// Get returns a principal by email. Absent records surface as not found, and
// callers tolerate that as a null-style result.
func (s *UserService) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// List returns paginated users and pagination metadata. An optional exact
// role filter narrows the set.
func (s *UserService) List(ctx context.Context, params models.ListingParams, role models.Role) ([]models.User, *models.Pagination, error) {
	users, total, err := s.repo.List(ctx, params, role)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}

	n := params.Normalize()
	pagination := &models.Pagination{
		Page:       n.Page,
		PageSize:   n.Size,
		TotalCount: total,
	}

	return users, pagination, nil
}

// UpdateRole assigns a role to a principal. Roles are only ever mutated
// through this operation.
func (s *UserService) UpdateRole(ctx context.Context, email string, req UpdateRoleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}

	if err := s.repo.UpdateRole(ctx, email, req.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role")
	}

	s.logger.Info("role assigned", zap.String("email", email), zap.String("role", string(req.Role)))
	return nil
}
