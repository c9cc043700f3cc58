package models

import "time"

// Booking records a student booking a study session. Price is stored as raw
// text: upstream clients have historically sent both numbers and strings, and
// aggregation tolerates whatever landed in the column.
type Booking struct {
	ID           string    `db:"id" json:"id"`
	SessionID    string    `db:"session_id" json:"session_id"`
	StudentEmail string    `db:"student_email" json:"student_email"`
	TutorEmail   string    `db:"tutor_email" json:"tutor_email"`
	Price        string    `db:"price" json:"price"`
	SessionDate  time.Time `db:"session_date" json:"session_date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// BookingScope narrows the booking set visible to a role. The zero value is
// the global (admin) scope. Narrowing happens in the repository filter so an
// unscoped set is never pulled into memory.
type BookingScope struct {
	TutorEmail   string
	StudentEmail string
}
