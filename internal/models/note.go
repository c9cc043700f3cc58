package models

import "time"

// Note is a personal study note owned by its author's email.
type Note struct {
	ID          string    `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
