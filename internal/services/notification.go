package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/logging"
	"github.com/skilllink/skilllink/internal/models"
)

const notifyTimeout = 10 * time.Second

// UserGetter loads full user records for notification delivery.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ConnectionEmailSender sends the connection lifecycle emails.
type ConnectionEmailSender interface {
	SendConnectionRequestEmail(ctx context.Context, to *models.User, from models.Profile) error
	SendConnectionAcceptedEmail(ctx context.Context, to *models.User, by models.Profile) error
}

// NotificationService delivers connection emails in the background. Failures
// are logged, never surfaced to the request that triggered them.
type NotificationService struct {
	users  UserGetter
	emails ConnectionEmailSender
	logger *logging.Logger
}

func NewNotificationService(users UserGetter, emails ConnectionEmailSender, logger *logging.Logger) *NotificationService {
	if logger == nil {
		logger = logging.Default
	}
	return &NotificationService{
		users:  users,
		emails: emails,
		logger: logger,
	}
}

func (s *NotificationService) ConnectionRequested(ctx context.Context, toUserID, fromUserID uuid.UUID) {
	go s.deliver("connection_requested", toUserID, fromUserID, s.emails.SendConnectionRequestEmail)
}

func (s *NotificationService) ConnectionAccepted(ctx context.Context, toUserID, byUserID uuid.UUID) {
	go s.deliver("connection_accepted", toUserID, byUserID, s.emails.SendConnectionAcceptedEmail)
}

func (s *NotificationService) deliver(kind string, toUserID, aboutUserID uuid.UUID, send func(context.Context, *models.User, models.Profile) error) {
	// Detached from the request context so a finished request does not cancel
	// the delivery.
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	to, err := s.users.GetByID(ctx, toUserID)
	if err != nil {
		s.logger.Error("Failed to load notification recipient", map[string]interface{}{
			"kind":    kind,
			"user_id": toUserID.String(),
			"error":   err.Error(),
		})
		return
	}

	about, err := s.users.GetByID(ctx, aboutUserID)
	if err != nil {
		s.logger.Error("Failed to load notification subject", map[string]interface{}{
			"kind":    kind,
			"user_id": aboutUserID.String(),
			"error":   err.Error(),
		})
		return
	}

	profile := models.Profile{
		ID:          about.ID,
		DisplayName: about.DisplayName,
		Role:        about.Role,
		Subject:     about.Subject,
	}

	if err := send(ctx, to, profile); err != nil {
		s.logger.Error("Failed to send notification email", map[string]interface{}{
			"kind":    kind,
			"user_id": toUserID.String(),
			"error":   err.Error(),
		})
	}
}
