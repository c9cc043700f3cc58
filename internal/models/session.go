package models

import "time"

// SessionStatus tracks the moderation lifecycle of a study session.
type SessionStatus string

const (
	SessionPending  SessionStatus = "pending"
	SessionApproved SessionStatus = "approved"
	SessionRejected SessionStatus = "rejected"
	SessionBooked   SessionStatus = "booked"
)

// Session represents a study session published by a tutor.
// RegistrationEndDate is compared as a calendar date, not a datetime, when
// deciding whether registration is still ongoing.
type Session struct {
	ID                  string        `db:"id" json:"id"`
	TutorEmail          string        `db:"tutor_email" json:"tutor_email"`
	TutorName           string        `db:"tutor_name" json:"tutor_name"`
	Title               string        `db:"title" json:"title"`
	Description         string        `db:"description" json:"description"`
	ImageURL            string        `db:"image_url" json:"image_url,omitempty"`
	RegistrationEndDate time.Time     `db:"registration_end_date" json:"registration_end_date"`
	SessionDate         time.Time     `db:"session_date" json:"session_date"`
	Fee                 float64       `db:"fee" json:"fee"`
	Status              SessionStatus `db:"status" json:"status"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updated_at"`
}
