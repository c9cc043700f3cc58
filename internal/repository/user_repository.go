package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/studyhive-labs/studyhive-api/internal/models"
)

const userColumns = "id, email, name, photo_url, role, status, registered_at, updated_at"

// UserRepository provides database access for principals.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by its natural key.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Create inserts a new principal. Role stays unset until explicitly assigned.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.RegisteredAt.IsZero() {
		user.RegisteredAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO users (id, email, name, photo_url, role, status, registered_at, updated_at)
		VALUES (:id, :email, :name, :photo_url, :role, :status, :registered_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateStatus persists a role-upgrade request marker.
func (r *UserRepository) UpdateStatus(ctx context.Context, email, status string) error {
	const query = `UPDATE users SET status = $2, updated_at = $3 WHERE email = $1`
	if _, err := r.db.ExecContext(ctx, query, email, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	return nil
}

// UpdateRole assigns a role, clearing any pending request marker.
func (r *UserRepository) UpdateRole(ctx context.Context, email string, role models.Role) error {
	const query = `UPDATE users SET role = $2, status = '', updated_at = $3 WHERE email = $1`
	res, err := r.db.ExecContext(ctx, query, email, role, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns users matching the listing parameters together with the total
// count computed from the identical filter.
func (r *UserRepository) List(ctx context.Context, params models.ListingParams, role models.Role) ([]models.User, int, error) {
	q := &listingQuery{}
	if term := strings.TrimSpace(params.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		q.condition("(LOWER(email) LIKE $%d OR LOWER(name) LIKE $%d)", pattern, pattern)
	}
	if role != models.RoleUnset {
		q.condition("role = $%d", string(role))
	}

	listStmt := `SELECT ` + userColumns + ` FROM users` + q.whereClause() + ` ORDER BY registered_at DESC` + limitClause(params)
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, listStmt, q.args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	countStmt := `SELECT COUNT(*) FROM users` + q.whereClause()
	var total int
	if err := r.db.GetContext(ctx, &total, countStmt, q.args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

// CountByRole reports how many principals hold the given role.
func (r *UserRepository) CountByRole(ctx context.Context, role models.Role) (int, error) {
	const query = `SELECT COUNT(*) FROM users WHERE role = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, role); err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return total, nil
}
