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

const noteColumns = "id, email, title, description, created_at, updated_at"

// NoteRepository provides database access for study notes.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts a note.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	const query = `INSERT INTO notes (id, email, title, description, created_at, updated_at)
		VALUES (:id, :email, :title, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// FindByID returns a note by identifier.
func (r *NoteRepository) FindByID(ctx context.Context, id string) (*models.Note, error) {
	const query = `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 LIMIT 1`
	var note models.Note
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find note by id: %w", err)
	}
	return &note, nil
}

// ListByOwner returns every note owned by the email, newest first.
func (r *NoteRepository) ListByOwner(ctx context.Context, email string) ([]models.Note, error) {
	const query = `SELECT ` + noteColumns + ` FROM notes WHERE email = $1 ORDER BY created_at DESC`
	notes := []models.Note{}
	if err := r.db.SelectContext(ctx, &notes, query, email); err != nil {
		return nil, fmt.Errorf("list notes by owner: %w", err)
	}
	return notes, nil
}

// Update persists the mutable note fields.
func (r *NoteRepository) Update(ctx context.Context, note *models.Note) error {
	note.UpdatedAt = time.Now().UTC()
	const query = `UPDATE notes SET title = :title, description = :description, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

// Delete removes a note.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM notes WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
