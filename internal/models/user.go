package models

import (
	"strings"
	"time"
)

// Role represents the marketplace roles. A freshly signed-in principal holds
// RoleUnset until an admin assigns one.
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
	RoleUnset   Role = ""
)

// ParseRole maps a filter token onto a role. Unknown tokens map to RoleUnset
// and therefore narrow nothing.
func ParseRole(token string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(token))) {
	case RoleStudent:
		return RoleStudent
	case RoleTutor:
		return RoleTutor
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUnset
	}
}

// StatusRoleRequested marks a user who asked for a role upgrade on sign-in.
const StatusRoleRequested = "requested"

// User represents a principal stored in the users table. Email is the natural
// key and is never regenerated.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PhotoURL     string    `db:"photo_url" json:"photo_url,omitempty"`
	Role         Role      `db:"role" json:"role"`
	Status       string    `db:"status" json:"status,omitempty"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
