package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleMentor  UserRole = "mentor"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	return r == UserRoleStudent || r == UserRoleMentor
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Role         UserRole  `json:"role"`
	Subject      string    `json:"subject"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	DisplayName  string
	Role         UserRole
	Subject      string
}

// Profile is the public view of a user shown in the directory and on
// connection rows. It never carries the email or password hash.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Role        UserRole  `json:"role"`
	Subject     string    `json:"subject"`
}

type ProfileFilter struct {
	Role    UserRole // empty means any role
	Subject string   // empty means any subject
	Query   string   // substring match on display name
}

type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
