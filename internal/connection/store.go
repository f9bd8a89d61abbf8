package connection

import (
	"context"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/models"
)

// Store is the persistence contract for connection records. Implementations
// must make UpdateStatus a compare-and-set: the write only happens when the
// record's current status matches expected, otherwise ErrPreconditionFailed.
type Store interface {
	// ListInvolving returns every record where userID is requester or receiver.
	ListInvolving(ctx context.Context, userID uuid.UUID) ([]models.Connection, error)

	// GetByID returns the record or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Connection, error)

	// Create inserts a new pending record. Returns ErrDuplicateRequest when an
	// active record already exists for the pair in either direction.
	Create(ctx context.Context, requesterID, receiverID uuid.UUID) (*models.Connection, error)

	// UpdateStatus conditionally moves the record from expected to next.
	// Returns ErrNotFound if the record is gone and ErrPreconditionFailed if
	// its status no longer matches expected.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next models.ConnectionStatus) (*models.Connection, error)

	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
