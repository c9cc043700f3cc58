package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListBySession(ctx context.Context, sessionID string) ([]models.Review, error)
}

// CreateReviewRequest is the student payload for rating a session.
type CreateReviewRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid4"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// ReviewService handles session review workflows.
type ReviewService struct {
	repo      reviewRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReviewService creates an instance of ReviewService.
func NewReviewService(repo reviewRepository, validate *validator.Validate, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ReviewService{repo: repo, validator: validate, logger: logger}
}

// Create stores a review on behalf of the student.
func (s *ReviewService) Create(ctx context.Context, studentEmail string, req CreateReviewRequest) (*models.Review, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}

	review := &models.Review{
		SessionID:    req.SessionID,
		StudentEmail: studentEmail,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create review")
	}
	return review, nil
}

// ListBySession returns the reviews for a session.
func (s *ReviewService) ListBySession(ctx context.Context, sessionID string) ([]models.Review, error) {
	if err := validateID(sessionID); err != nil {
		return nil, err
	}
	reviews, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviews")
	}
	return reviews, nil
}
