package models

import (
	"time"

	"github.com/google/uuid"
)

// Reflection is a private feedback entry a user logs after a mentoring session.
type Reflection struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	SessionDate string    `json:"session_date"`
	Mentor      string    `json:"mentor"`
	Notes       string    `json:"notes"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateReflectionParams struct {
	UserID      uuid.UUID
	SessionDate string
	Mentor      string
	Notes       string
	Rating      int
}
