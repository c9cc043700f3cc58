package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/studyhive-labs/studyhive-api/internal/models"
)

const bookingColumns = "id, session_id, student_email, tutor_email, price, session_date, created_at"

// BookingRepository provides database access for bookings. Bookings are
// immutable once created.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a booking.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO bookings (id, session_id, student_email, tutor_email, price, session_date, created_at)
		VALUES (:id, :session_id, :student_email, :tutor_email, :price, :session_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// FindByID returns a booking by identifier.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 LIMIT 1`
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find booking by id: %w", err)
	}
	return &booking, nil
}

// ListByScope returns the bookings visible inside the scope, in insertion
// order. The statistics chart depends on this ordering being stable and NOT
// sorted by session date.
func (r *BookingRepository) ListByScope(ctx context.Context, scope models.BookingScope) ([]models.Booking, error) {
	q := &listingQuery{}
	if scope.TutorEmail != "" {
		q.condition("tutor_email = $%d", scope.TutorEmail)
	}
	if scope.StudentEmail != "" {
		q.condition("student_email = $%d", scope.StudentEmail)
	}

	stmt := `SELECT ` + bookingColumns + ` FROM bookings` + q.whereClause() + ` ORDER BY created_at ASC, id ASC`
	bookings := []models.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, stmt, q.args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
