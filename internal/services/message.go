package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/models"
)

var (
	ErrEmptyMessage  = errors.New("message body is empty")
	ErrMessageSelf   = errors.New("cannot message yourself")
	ErrNotConnected  = errors.New("users are not connected")
	ErrMessageTooBig = errors.New("message body too long")
)

const maxMessageLength = 4000

// ConnectionChecker gates messaging on an accepted connection.
type ConnectionChecker interface {
	Connected(ctx context.Context, userID, otherID uuid.UUID) (bool, error)
}

type MessageService struct {
	db          DBConn
	connections ConnectionChecker
}

func NewMessageService(db DBConn, connections ConnectionChecker) *MessageService {
	return &MessageService{db: db, connections: connections}
}

// ConversationKey derives the stable key for a two-party conversation: the
// pair's IDs sorted and joined, so both participants compute the same key.
func ConversationKey(a, b uuid.UUID) string {
	first, second := a.String(), b.String()
	if second < first {
		first, second = second, first
	}
	return first + "_" + second
}

func (s *MessageService) Send(ctx context.Context, senderID, recipientID uuid.UUID, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if len(body) > maxMessageLength {
		return nil, ErrMessageTooBig
	}
	if senderID == recipientID {
		return nil, ErrMessageSelf
	}

	connected, err := s.connections.Connected(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrNotConnected
	}

	msg := &models.Message{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO messages (conversation_id, sender_id, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, conversation_id, sender_id, body, created_at`,
		ConversationKey(senderID, recipientID), senderID, body,
	).Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Body, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("sending message: %w", err)
	}

	return msg, nil
}

// ListConversation returns the full history between the two users, oldest
// first. Both the list and send paths require an accepted connection.
func (s *MessageService) ListConversation(ctx context.Context, userID, otherID uuid.UUID) ([]models.Message, error) {
	if userID == otherID {
		return nil, ErrMessageSelf
	}

	connected, err := s.connections.Connected(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrNotConnected
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, conversation_id, sender_id, body, created_at
		 FROM messages
		 WHERE conversation_id = $1
		 ORDER BY created_at, id`,
		ConversationKey(userID, otherID),
	)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}

	if messages == nil {
		messages = []models.Message{}
	}

	return messages, nil
}
