package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/connection"
	"github.com/skilllink/skilllink/internal/models"
	"github.com/skilllink/skilllink/internal/services"
)

type mockUserService struct {
	CreateFunc           func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*models.User, error)
	ListProfilesFunc     func(ctx context.Context, currentUserID uuid.UUID, filter models.ProfileFilter) ([]models.Profile, error)
	GetProfilesByIDsFunc func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Profile, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	return m.CreateFunc(ctx, params)
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *mockUserService) ListProfiles(ctx context.Context, currentUserID uuid.UUID, filter models.ProfileFilter) ([]models.Profile, error) {
	return m.ListProfilesFunc(ctx, currentUserID, filter)
}

func (m *mockUserService) GetProfilesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Profile, error) {
	return m.GetProfilesByIDsFunc(ctx, ids)
}

type mockAuthService struct {
	HashPasswordFunc          func(password string) (string, error)
	VerifyPasswordFunc        func(hash, password string) bool
	GenerateSessionTokenFunc  func() (string, string, error)
	CreateSessionFunc         func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSessionFunc       func(ctx context.Context, token string) (*models.User, error)
	DeleteSessionFunc         func(ctx context.Context, token string) error
	DeleteAllUserSessionsFunc func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed", nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return true
}

func (m *mockAuthService) GenerateSessionToken() (string, string, error) {
	if m.GenerateSessionTokenFunc != nil {
		return m.GenerateSessionTokenFunc()
	}
	return "token", "hash", nil
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, userID)
	}
	return "token", nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	return m.ValidateSessionFunc(ctx, token)
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthService) DeleteAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAllUserSessionsFunc != nil {
		return m.DeleteAllUserSessionsFunc(ctx, userID)
	}
	return nil
}

type mockConnectionService struct {
	OverviewFunc  func(ctx context.Context, userID uuid.UUID, filter models.ProfileFilter) (*services.ConnectionOverview, error)
	RequestFunc   func(ctx context.Context, fromID, toID uuid.UUID) (*connection.Resolved, error)
	AcceptFunc    func(ctx context.Context, recordID, actorID uuid.UUID) (*connection.Resolved, error)
	DeclineFunc   func(ctx context.Context, recordID, actorID uuid.UUID) (*connection.Resolved, error)
	CancelFunc    func(ctx context.Context, recordID, actorID uuid.UUID) error
	ConnectedFunc func(ctx context.Context, userID, otherID uuid.UUID) (bool, error)
}

func (m *mockConnectionService) Overview(ctx context.Context, userID uuid.UUID, filter models.ProfileFilter) (*services.ConnectionOverview, error) {
	return m.OverviewFunc(ctx, userID, filter)
}

func (m *mockConnectionService) Request(ctx context.Context, fromID, toID uuid.UUID) (*connection.Resolved, error) {
	return m.RequestFunc(ctx, fromID, toID)
}

func (m *mockConnectionService) Accept(ctx context.Context, recordID, actorID uuid.UUID) (*connection.Resolved, error) {
	return m.AcceptFunc(ctx, recordID, actorID)
}

func (m *mockConnectionService) Decline(ctx context.Context, recordID, actorID uuid.UUID) (*connection.Resolved, error) {
	return m.DeclineFunc(ctx, recordID, actorID)
}

func (m *mockConnectionService) Cancel(ctx context.Context, recordID, actorID uuid.UUID) error {
	return m.CancelFunc(ctx, recordID, actorID)
}

func (m *mockConnectionService) Connected(ctx context.Context, userID, otherID uuid.UUID) (bool, error) {
	return m.ConnectedFunc(ctx, userID, otherID)
}

type mockEventService struct {
	CreateFunc    func(ctx context.Context, params models.CreateEventParams) (*models.Event, error)
	ListFunc      func(ctx context.Context, viewerID uuid.UUID) ([]models.Event, error)
	GetByIDFunc   func(ctx context.Context, id uuid.UUID) (*models.Event, error)
	JoinFunc      func(ctx context.Context, eventID, userID uuid.UUID) error
	LeaveFunc     func(ctx context.Context, eventID, userID uuid.UUID) error
	DeleteFunc    func(ctx context.Context, eventID, userID uuid.UUID) error
	AttendeesFunc func(ctx context.Context, eventID uuid.UUID) ([]models.EventAttendee, error)
}

func (m *mockEventService) Create(ctx context.Context, params models.CreateEventParams) (*models.Event, error) {
	return m.CreateFunc(ctx, params)
}

func (m *mockEventService) List(ctx context.Context, viewerID uuid.UUID) ([]models.Event, error) {
	return m.ListFunc(ctx, viewerID)
}

func (m *mockEventService) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockEventService) Join(ctx context.Context, eventID, userID uuid.UUID) error {
	return m.JoinFunc(ctx, eventID, userID)
}

func (m *mockEventService) Leave(ctx context.Context, eventID, userID uuid.UUID) error {
	return m.LeaveFunc(ctx, eventID, userID)
}

func (m *mockEventService) Delete(ctx context.Context, eventID, userID uuid.UUID) error {
	return m.DeleteFunc(ctx, eventID, userID)
}

func (m *mockEventService) Attendees(ctx context.Context, eventID uuid.UUID) ([]models.EventAttendee, error) {
	return m.AttendeesFunc(ctx, eventID)
}

type mockMessageService struct {
	SendFunc             func(ctx context.Context, senderID, recipientID uuid.UUID, body string) (*models.Message, error)
	ListConversationFunc func(ctx context.Context, userID, otherID uuid.UUID) ([]models.Message, error)
}

func (m *mockMessageService) Send(ctx context.Context, senderID, recipientID uuid.UUID, body string) (*models.Message, error) {
	return m.SendFunc(ctx, senderID, recipientID, body)
}

func (m *mockMessageService) ListConversation(ctx context.Context, userID, otherID uuid.UUID) ([]models.Message, error) {
	return m.ListConversationFunc(ctx, userID, otherID)
}

type mockReflectionService struct {
	CreateFunc     func(ctx context.Context, params models.CreateReflectionParams) (*models.Reflection, error)
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]models.Reflection, error)
}

func (m *mockReflectionService) Create(ctx context.Context, params models.CreateReflectionParams) (*models.Reflection, error) {
	return m.CreateFunc(ctx, params)
}

func (m *mockReflectionService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Reflection, error) {
	return m.ListByUserFunc(ctx, userID)
}
