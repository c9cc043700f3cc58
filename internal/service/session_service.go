package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

type sessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id string) (*models.Session, error)
	List(ctx context.Context, params models.ListingParams) ([]models.Session, int, error)
	ListByTutor(ctx context.Context, tutorEmail string) ([]models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	UpdateStatus(ctx context.Context, id string, status models.SessionStatus, fee *float64) error
	Delete(ctx context.Context, id string) error
}

// CreateSessionRequest is the tutor payload for publishing a session.
type CreateSessionRequest struct {
	Title               string    `json:"title" validate:"required"`
	Description         string    `json:"description"`
	ImageURL            string    `json:"image_url"`
	TutorName           string    `json:"tutor_name"`
	RegistrationEndDate time.Time `json:"registration_end_date" validate:"required"`
	SessionDate         time.Time `json:"session_date" validate:"required"`
	Fee                 float64   `json:"fee" validate:"gte=0"`
}

// UpdateSessionRequest carries the mutable session fields.
type UpdateSessionRequest struct {
	Title               string    `json:"title" validate:"required"`
	Description         string    `json:"description"`
	ImageURL            string    `json:"image_url"`
	RegistrationEndDate time.Time `json:"registration_end_date" validate:"required"`
	SessionDate         time.Time `json:"session_date" validate:"required"`
	Fee                 float64   `json:"fee" validate:"gte=0"`
}

// ModerateSessionRequest is the admin approve/reject payload. Fee is only
// consulted on approval.
type ModerateSessionRequest struct {
	Status models.SessionStatus `json:"status" validate:"required,oneof=approved rejected"`
	Fee    *float64             `json:"fee" validate:"omitempty,gte=0"`
}

// SessionService handles study-session workflows.
type SessionService struct {
	repo      sessionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService creates an instance of SessionService.
func NewSessionService(repo sessionRepository, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SessionService{repo: repo, validator: validate, logger: logger}
}

// Create publishes a new session in pending status on behalf of the tutor.
func (s *SessionService) Create(ctx context.Context, tutorEmail string, req CreateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}

	session := &models.Session{
		TutorEmail:          tutorEmail,
		TutorName:           req.TutorName,
		Title:               req.Title,
		Description:         req.Description,
		ImageURL:            req.ImageURL,
		RegistrationEndDate: req.RegistrationEndDate,
		SessionDate:         req.SessionDate,
		Fee:                 req.Fee,
		Status:              models.SessionPending,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	return session, nil
}

// Get returns a session by id. A malformed identifier is a client error, not
// a crash.
func (s *SessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return session, nil
}

// List returns sessions matching the listing parameters with pagination
// metadata derived from the same filter.
func (s *SessionService) List(ctx context.Context, params models.ListingParams) ([]models.Session, *models.Pagination, error) {
	sessions, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}

	n := params.Normalize()
	pagination := &models.Pagination{
		Page:       n.Page,
		PageSize:   n.Size,
		TotalCount: total,
	}
	return sessions, pagination, nil
}

// ListByTutor returns every session owned by the tutor.
func (s *SessionService) ListByTutor(ctx context.Context, tutorEmail string) ([]models.Session, error) {
	sessions, err := s.repo.ListByTutor(ctx, tutorEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tutor sessions")
	}
	return sessions, nil
}

// Update persists session edits. Tutors may only edit their own sessions;
// admins may edit any.
func (s *SessionService) Update(ctx context.Context, id, actorEmail string, actorRole models.Role, req UpdateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && session.TutorEmail != actorEmail {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "session belongs to another tutor")
	}

	session.Title = req.Title
	session.Description = req.Description
	session.ImageURL = req.ImageURL
	session.RegistrationEndDate = req.RegistrationEndDate
	session.SessionDate = req.SessionDate
	session.Fee = req.Fee

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update session")
	}
	return session, nil
}

// Moderate transitions a pending session to approved or rejected.
func (s *SessionService) Moderate(ctx context.Context, id string, req ModerateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid moderation payload")
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var fee *float64
	if req.Status == models.SessionApproved && req.Fee != nil {
		fee = req.Fee
	}
	if err := s.repo.UpdateStatus(ctx, id, req.Status, fee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update session status")
	}

	session.Status = req.Status
	if fee != nil {
		session.Fee = *fee
	}
	return session, nil
}

// MarkBooked flags a session as booked once a booking completes.
func (s *SessionService) MarkBooked(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, models.SessionBooked, nil); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to flag session booked")
	}
	return nil
}

// Delete removes a session. Tutors may only delete their own; admins any.
func (s *SessionService) Delete(ctx context.Context, id, actorEmail string, actorRole models.Role) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && session.TutorEmail != actorEmail {
		return appErrors.Clone(appErrors.ErrForbidden, "session belongs to another tutor")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	return nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "malformed identifier")
	}
	return nil
}
