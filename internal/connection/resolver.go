// Package connection derives and mutates the relationship between two users
// from directional connection request records. Every screen-facing feature
// that touches connection state goes through this package so that duplicate
// requests, unauthorized transitions and lost races are handled in one place.
package connection

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/models"
)

// State is the viewing-user-relative relationship state with a counterpart.
type State string

const (
	StateNone            State = "none"
	StatePendingOutgoing State = "pending_outgoing"
	StatePendingIncoming State = "pending_incoming"
	StateAccepted        State = "accepted"
	StateDeclined        State = "declined"
)

// Pending reports whether the state is an unanswered request in either direction.
func (s State) Pending() bool {
	return s == StatePendingOutgoing || s == StatePendingIncoming
}

// Resolved is the derived relationship with one counterpart. It is recomputed
// from the record snapshot on every load and never persisted.
type Resolved struct {
	CounterpartID uuid.UUID `json:"counterpart_id"`
	State         State     `json:"state"`
	RecordID      uuid.UUID `json:"record_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Anomaly reports more than one active record for the same pair, which
// violates the pair-uniqueness invariant. The resolver still answers (newest
// active record wins) but the caller is expected to log the anomaly.
type Anomaly struct {
	CounterpartID uuid.UUID
	RecordIDs     []uuid.UUID
}

// Resolve maps a snapshot of connection records to one relationship state per
// counterpart, from viewerID's perspective. Records not involving the viewer
// are ignored. The result is deterministic for a given snapshot: no clock, no
// randomness, ties broken by CreatedAt and then record id.
func Resolve(viewerID uuid.UUID, records []models.Connection) (map[uuid.UUID]Resolved, []Anomaly, error) {
	if viewerID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: empty viewer id", ErrInvalidRecord)
	}

	active := make(map[uuid.UUID][]models.Connection)
	declined := make(map[uuid.UUID]models.Connection)

	for _, rec := range records {
		if rec.RequesterID != viewerID && rec.ReceiverID != viewerID {
			continue
		}
		if rec.RequesterID == uuid.Nil || rec.ReceiverID == uuid.Nil {
			return nil, nil, fmt.Errorf("%w: record %s has an empty party id", ErrInvalidRecord, rec.ID)
		}
		if rec.RequesterID == rec.ReceiverID {
			return nil, nil, fmt.Errorf("%w: record %s links %s to itself", ErrInvalidRecord, rec.ID, rec.RequesterID)
		}

		counterpart := rec.RequesterID
		if counterpart == viewerID {
			counterpart = rec.ReceiverID
		}

		if rec.Status.Active() {
			active[counterpart] = append(active[counterpart], rec)
			continue
		}
		if prev, ok := declined[counterpart]; !ok || newer(rec, prev) {
			declined[counterpart] = rec
		}
	}

	resolved := make(map[uuid.UUID]Resolved, len(active)+len(declined))
	var anomalies []Anomaly

	for counterpart, recs := range active {
		winner := recs[0]
		for _, rec := range recs[1:] {
			if newer(rec, winner) {
				winner = rec
			}
		}
		if len(recs) > 1 {
			ids := make([]uuid.UUID, len(recs))
			for i, rec := range recs {
				ids[i] = rec.ID
			}
			anomalies = append(anomalies, Anomaly{CounterpartID: counterpart, RecordIDs: ids})
		}
		resolved[counterpart] = Resolved{
			CounterpartID: counterpart,
			State:         stateOf(viewerID, winner),
			RecordID:      winner.ID,
			CreatedAt:     winner.CreatedAt,
		}
	}

	// A declined record only shows through when no active record exists.
	for counterpart, rec := range declined {
		if _, ok := resolved[counterpart]; ok {
			continue
		}
		resolved[counterpart] = Resolved{
			CounterpartID: counterpart,
			State:         StateDeclined,
			RecordID:      rec.ID,
			CreatedAt:     rec.CreatedAt,
		}
	}

	return resolved, anomalies, nil
}

func stateOf(viewerID uuid.UUID, rec models.Connection) State {
	switch rec.Status {
	case models.ConnectionStatusAccepted:
		return StateAccepted
	case models.ConnectionStatusDeclined:
		return StateDeclined
	default:
		if rec.RequesterID == viewerID {
			return StatePendingOutgoing
		}
		return StatePendingIncoming
	}
}

func newer(a, b models.Connection) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}
