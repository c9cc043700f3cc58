package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

type noteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, id string) (*models.Note, error)
	ListByOwner(ctx context.Context, email string) ([]models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
}

// NoteRequest is the payload for creating or updating a study note.
type NoteRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// NoteService handles personal study note workflows. Notes are private to
// their owner's email.
type NoteService struct {
	repo      noteRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoteService creates an instance of NoteService.
func NewNoteService(repo noteRepository, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &NoteService{repo: repo, validator: validate, logger: logger}
}

// Create stores a note for the owner.
func (s *NoteService) Create(ctx context.Context, ownerEmail string, req NoteRequest) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}

	note := &models.Note{
		Email:       ownerEmail,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create note")
	}
	return note, nil
}

// Get returns a note, enforcing ownership.
func (s *NoteService) Get(ctx context.Context, id, ownerEmail string) (*models.Note, error) {
	note, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.Email != ownerEmail {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "note belongs to another user")
	}
	return note, nil
}

// ListByOwner returns the owner's notes.
func (s *NoteService) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Note, error) {
	notes, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notes")
	}
	return notes, nil
}

// Update persists note edits, enforcing ownership.
func (s *NoteService) Update(ctx context.Context, id, ownerEmail string, req NoteRequest) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}

	note, err := s.Get(ctx, id, ownerEmail)
	if err != nil {
		return nil, err
	}

	note.Title = req.Title
	note.Description = req.Description
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update note")
	}
	return note, nil
}

// Delete removes a note, enforcing ownership.
func (s *NoteService) Delete(ctx context.Context, id, ownerEmail string) error {
	if _, err := s.Get(ctx, id, ownerEmail); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete note")
	}
	return nil
}

func (s *NoteService) load(ctx context.Context, id string) (*models.Note, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "note not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load note")
	}
	return note, nil
}
