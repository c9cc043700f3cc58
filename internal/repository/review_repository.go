package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/studyhive-labs/studyhive-api/internal/models"
)

// ReviewRepository provides database access for session reviews.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO reviews (id, session_id, student_email, rating, comment, created_at)
		VALUES (:id, :session_id, :student_email, :rating, :comment, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// ListBySession returns the reviews for a session, newest first.
func (r *ReviewRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Review, error) {
	const query = `SELECT id, session_id, student_email, rating, comment, created_at FROM reviews WHERE session_id = $1 ORDER BY created_at DESC`
	reviews := []models.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, sessionID); err != nil {
		return nil, fmt.Errorf("list reviews by session: %w", err)
	}
	return reviews, nil
}
