package connection

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/models"
)

// Engine validates connection transitions and applies them through the store.
// It holds no state of its own: every operation reads a fresh snapshot, checks
// the invariants, and issues a single conditional write.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Resolve loads the viewer's records and derives one relationship per
// counterpart. Anomalies (duplicate active records for a pair) are returned
// for the caller to log; the resolved map already reflects the tie-break.
func (e *Engine) Resolve(ctx context.Context, viewerID uuid.UUID) (map[uuid.UUID]Resolved, []Anomaly, error) {
	records, err := e.store.ListInvolving(ctx, viewerID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing connection records: %w", err)
	}
	return Resolve(viewerID, records)
}

// Request creates a pending record from fromID to toID. It refuses self
// requests and pairs that already have an active record in either direction.
// A declined history does not block a fresh request.
func (e *Engine) Request(ctx context.Context, fromID, toID uuid.UUID) (*Resolved, error) {
	if fromID == uuid.Nil || toID == uuid.Nil {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidRecord)
	}
	if fromID == toID {
		return nil, ErrSelfRequest
	}

	resolved, _, err := e.Resolve(ctx, fromID)
	if err != nil {
		return nil, err
	}
	if current, ok := resolved[toID]; ok && current.State != StateDeclined {
		return nil, fmt.Errorf("%w: currently %s", ErrDuplicateRequest, current.State)
	}

	// The store's uniqueness constraint backstops the snapshot check: two
	// near-simultaneous requests for the same pair cannot both land.
	rec, err := e.store.Create(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		CounterpartID: toID,
		State:         StatePendingOutgoing,
		RecordID:      rec.ID,
		CreatedAt:     rec.CreatedAt,
	}, nil
}

// Accept moves a pending record to accepted. Only the receiver may accept.
// Accepting an already-accepted record again is a no-op success so transport
// retries stay safe; a race lost at write time surfaces ErrPreconditionFailed.
func (e *Engine) Accept(ctx context.Context, recordID, actorID uuid.UUID) (*Resolved, error) {
	return e.answer(ctx, recordID, actorID, models.ConnectionStatusAccepted)
}

// Decline moves a pending record to declined. Same rules as Accept.
func (e *Engine) Decline(ctx context.Context, recordID, actorID uuid.UUID) (*Resolved, error) {
	return e.answer(ctx, recordID, actorID, models.ConnectionStatusDeclined)
}

func (e *Engine) answer(ctx context.Context, recordID, actorID uuid.UUID, target models.ConnectionStatus) (*Resolved, error) {
	rec, err := e.store.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if actorID != rec.ReceiverID {
		return nil, fmt.Errorf("%w: only the receiver can answer a request", ErrNotAuthorized)
	}

	switch rec.Status {
	case target:
		// Retry of an already-applied answer.
		return resolvedFor(actorID, rec), nil
	case models.ConnectionStatusPending:
		// fall through to the conditional write
	default:
		return nil, fmt.Errorf("%w: record is %s", ErrInvalidState, rec.Status)
	}

	updated, err := e.store.UpdateStatus(ctx, recordID, models.ConnectionStatusPending, target)
	if err != nil {
		return nil, err
	}
	return resolvedFor(actorID, updated), nil
}

// Cancel withdraws a pending request. Only the requester may cancel, and the
// record is deleted outright so the pair can request again later.
func (e *Engine) Cancel(ctx context.Context, recordID, actorID uuid.UUID) error {
	rec, err := e.store.GetByID(ctx, recordID)
	if err != nil {
		return err
	}

	if actorID != rec.RequesterID {
		return fmt.Errorf("%w: only the requester can cancel a request", ErrNotAuthorized)
	}
	if rec.Status != models.ConnectionStatusPending {
		return fmt.Errorf("%w: record is %s", ErrInvalidState, rec.Status)
	}

	return e.store.Delete(ctx, recordID)
}

// Connected reports whether the two users currently have an accepted
// connection. Used to gate messaging.
func (e *Engine) Connected(ctx context.Context, userID, otherID uuid.UUID) (bool, error) {
	resolved, _, err := e.Resolve(ctx, userID)
	if err != nil {
		return false, err
	}
	return resolved[otherID].State == StateAccepted, nil
}

func resolvedFor(viewerID uuid.UUID, rec *models.Connection) *Resolved {
	counterpart := rec.RequesterID
	if counterpart == viewerID {
		counterpart = rec.ReceiverID
	}
	return &Resolved{
		CounterpartID: counterpart,
		State:         stateOf(viewerID, *rec),
		RecordID:      rec.ID,
		CreatedAt:     rec.CreatedAt,
	}
}
