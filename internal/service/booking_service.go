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

type bookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	ListByScope(ctx context.Context, scope models.BookingScope) ([]models.Booking, error)
}

type bookedSessionFlagger interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	MarkBooked(ctx context.Context, id string) error
}

// CreateBookingRequest is the student payload for booking a session. Price
// arrives as raw text and is stored as received; the aggregation layer
// tolerates whatever was recorded.
type CreateBookingRequest struct {
	SessionID   string    `json:"session_id" validate:"required,uuid4"`
	Price       string    `json:"price"`
	SessionDate time.Time `json:"session_date"`
}

// BookingService handles the booking workflows.
type BookingService struct {
	repo      bookingRepository
	sessions  bookedSessionFlagger
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookingService creates an instance of BookingService.
func NewBookingService(repo bookingRepository, sessions bookedSessionFlagger, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BookingService{repo: repo, sessions: sessions, validator: validate, logger: logger}
}

// Create records a booking for the student and flags the session as booked.
// The booking is immutable afterward.
func (s *BookingService) Create(ctx context.Context, studentEmail string, req CreateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}

	session, err := s.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		SessionID:    session.ID,
		StudentEmail: studentEmail,
		TutorEmail:   session.TutorEmail,
		Price:        req.Price,
		SessionDate:  req.SessionDate,
	}
	if booking.SessionDate.IsZero() {
		booking.SessionDate = session.SessionDate
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create booking")
	}

	if err := s.sessions.MarkBooked(ctx, session.ID); err != nil {
		s.logger.Warn("failed to flag session booked", zap.String("session_id", session.ID), zap.Error(err))
	}

	return booking, nil
}

// Get returns a booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	return booking, nil
}

// ListByStudent returns the student's bookings in insertion order.
func (s *BookingService) ListByStudent(ctx context.Context, studentEmail string) ([]models.Booking, error) {
	bookings, err := s.repo.ListByScope(ctx, models.BookingScope{StudentEmail: studentEmail})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	return bookings, nil
}
