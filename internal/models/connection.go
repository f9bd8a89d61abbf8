package models

import (
	"time"

	"github.com/google/uuid"
)

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusDeclined ConnectionStatus = "declined"
)

// Active reports whether the record still binds the pair. A declined record is
// history: it never blocks a fresh request.
func (s ConnectionStatus) Active() bool {
	return s == ConnectionStatusPending || s == ConnectionStatusAccepted
}

// Connection is a directional connection request between two users. The
// requester sent it; the receiver accepts or declines it.
type Connection struct {
	ID          uuid.UUID        `json:"id"`
	RequesterID uuid.UUID        `json:"requester_id"`
	ReceiverID  uuid.UUID        `json:"receiver_id"`
	Status      ConnectionStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}
