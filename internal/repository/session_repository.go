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

const sessionColumns = "id, tutor_email, tutor_name, title, description, image_url, registration_end_date, session_date, fee, status, created_at, updated_at"

// SessionRepository provides database access for study sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session in pending status.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Status == "" {
		session.Status = models.SessionPending
	}

	const query = `INSERT INTO sessions (id, tutor_email, tutor_name, title, description, image_url, registration_end_date, session_date, fee, status, created_at, updated_at)
		VALUES (:id, :tutor_email, :tutor_name, :title, :description, :image_url, :registration_end_date, :session_date, :fee, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindByID returns a session by identifier.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	const query = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 LIMIT 1`
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find session by id: %w", err)
	}
	return &session, nil
}

// List returns sessions matching the listing parameters plus the total count
// built from the identical filter. Search targets the title, the categorical
// filter compares the registration end date against the current calendar
// date, and the sort token orders by fee.
func (r *SessionRepository) List(ctx context.Context, params models.ListingParams) ([]models.Session, int, error) {
	q := &listingQuery{}
	q.search("title", params.Search)
	q.registrationWindow("registration_end_date", params.Filter)

	order := sortClause("fee", params.Sort)
	listStmt := `SELECT ` + sessionColumns + ` FROM sessions` + q.whereClause() + order + limitClause(params)
	sessions := []models.Session{}
	if err := r.db.SelectContext(ctx, &sessions, listStmt, q.args...); err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}

	countStmt := `SELECT COUNT(*) FROM sessions` + q.whereClause()
	var total int
	if err := r.db.GetContext(ctx, &total, countStmt, q.args...); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	return sessions, total, nil
}

// ListByTutor returns every session owned by the tutor.
func (r *SessionRepository) ListByTutor(ctx context.Context, tutorEmail string) ([]models.Session, error) {
	const query = `SELECT ` + sessionColumns + ` FROM sessions WHERE tutor_email = $1 ORDER BY created_at DESC`
	sessions := []models.Session{}
	if err := r.db.SelectContext(ctx, &sessions, query, tutorEmail); err != nil {
		return nil, fmt.Errorf("list sessions by tutor: %w", err)
	}
	return sessions, nil
}

// Update persists mutable session fields.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().UTC()
	const query = `UPDATE sessions SET title = :title, description = :description, image_url = :image_url,
		registration_end_date = :registration_end_date, session_date = :session_date, fee = :fee, updated_at = :updated_at
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// UpdateStatus transitions the moderation status, optionally setting the fee
// decided during approval.
func (r *SessionRepository) UpdateStatus(ctx context.Context, id string, status models.SessionStatus, fee *float64) error {
	var err error
	if fee != nil {
		const query = `UPDATE sessions SET status = $2, fee = $3, updated_at = $4 WHERE id = $1`
		_, err = r.db.ExecContext(ctx, query, id, status, *fee, time.Now().UTC())
	} else {
		const query = `UPDATE sessions SET status = $2, updated_at = $3 WHERE id = $1`
		_, err = r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	}
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	return nil
}

// Delete removes a session.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Count reports the total number of sessions.
func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM sessions`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return total, nil
}
