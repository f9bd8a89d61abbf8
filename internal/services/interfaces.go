package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/connection"
	"github.com/skilllink/skilllink/internal/models"
)

// UserServiceInterface defines the contract for user operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListProfiles(ctx context.Context, currentUserID uuid.UUID, filter models.ProfileFilter) ([]models.Profile, error)
	GetProfilesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Profile, error)
}

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	GenerateSessionToken() (token string, hash string, err error)
	CreateSession(ctx context.Context, userID uuid.UUID) (token string, err error)
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteAllUserSessions(ctx context.Context, userID uuid.UUID) error
}

// ConnectionServiceInterface defines the contract for connection operations
// used by handlers.
type ConnectionServiceInterface interface {
	Overview(ctx context.Context, userID uuid.UUID, filter models.ProfileFilter) (*ConnectionOverview, error)
	Request(ctx context.Context, fromID, toID uuid.UUID) (*connection.Resolved, error)
	Accept(ctx context.Context, recordID, actorID uuid.UUID) (*connection.Resolved, error)
	Decline(ctx context.Context, recordID, actorID uuid.UUID) (*connection.Resolved, error)
	Cancel(ctx context.Context, recordID, actorID uuid.UUID) error
	Connected(ctx context.Context, userID, otherID uuid.UUID) (bool, error)
}

// EventServiceInterface defines the contract for event operations.
type EventServiceInterface interface {
	Create(ctx context.Context, params models.CreateEventParams) (*models.Event, error)
	List(ctx context.Context, viewerID uuid.UUID) ([]models.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Join(ctx context.Context, eventID, userID uuid.UUID) error
	Leave(ctx context.Context, eventID, userID uuid.UUID) error
	Delete(ctx context.Context, eventID, userID uuid.UUID) error
	Attendees(ctx context.Context, eventID uuid.UUID) ([]models.EventAttendee, error)
}

// MessageServiceInterface defines the contract for messaging operations.
type MessageServiceInterface interface {
	Send(ctx context.Context, senderID, recipientID uuid.UUID, body string) (*models.Message, error)
	ListConversation(ctx context.Context, userID, otherID uuid.UUID) ([]models.Message, error)
}

// ReflectionServiceInterface defines the contract for reflection operations.
type ReflectionServiceInterface interface {
	Create(ctx context.Context, params models.CreateReflectionParams) (*models.Reflection, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Reflection, error)
}

// EmailServiceInterface defines the contract for email operations.
type EmailServiceInterface interface {
	SendWelcomeEmail(ctx context.Context, user *models.User) error
	SendConnectionRequestEmail(ctx context.Context, to *models.User, from models.Profile) error
	SendConnectionAcceptedEmail(ctx context.Context, to *models.User, by models.Profile) error
}
