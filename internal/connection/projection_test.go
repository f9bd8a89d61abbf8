package connection

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestProject_GroupsAndCounts(t *testing.T) {
	b := uuid.New()
	c := uuid.New()
	d := uuid.New()
	e := uuid.New()
	now := time.Now()

	resolved := map[uuid.UUID]Resolved{
		b: {CounterpartID: b, State: StatePendingIncoming, RecordID: uuid.New(), CreatedAt: now},
		c: {CounterpartID: c, State: StatePendingOutgoing, RecordID: uuid.New(), CreatedAt: now},
		d: {CounterpartID: d, State: StateAccepted, RecordID: uuid.New(), CreatedAt: now},
		e: {CounterpartID: e, State: StateDeclined, RecordID: uuid.New(), CreatedAt: now},
	}

	overview := Project(resolved, nil)

	if len(overview.Incoming) != 1 || overview.Incoming[0].CounterpartID != b {
		t.Fatalf("unexpected incoming: %+v", overview.Incoming)
	}
	if len(overview.Outgoing) != 1 || overview.Outgoing[0].CounterpartID != c {
		t.Fatalf("unexpected outgoing: %+v", overview.Outgoing)
	}
	if len(overview.Active) != 1 || overview.Active[0].CounterpartID != d {
		t.Fatalf("unexpected active: %+v", overview.Active)
	}
	if overview.Counts.All != 3 {
		t.Fatalf("expected all=3 (declined excluded), got %d", overview.Counts.All)
	}
	if overview.Counts.Pending != 2 {
		t.Fatalf("expected pending=2, got %d", overview.Counts.Pending)
	}
	if overview.Counts.Active != 1 {
		t.Fatalf("expected active=1, got %d", overview.Counts.Active)
	}
}

func TestProject_EmptyMap(t *testing.T) {
	overview := Project(nil, nil)
	if overview.Incoming == nil || overview.Outgoing == nil || overview.Active == nil {
		t.Fatal("groups must be empty slices, not nil")
	}
	if overview.Counts != (Counts{}) {
		t.Fatalf("expected zero counts, got %+v", overview.Counts)
	}
}

func TestProject_Filter(t *testing.T) {
	keep := uuid.New()
	drop := uuid.New()
	now := time.Now()
	resolved := map[uuid.UUID]Resolved{
		keep: {CounterpartID: keep, State: StateAccepted, CreatedAt: now},
		drop: {CounterpartID: drop, State: StateAccepted, CreatedAt: now},
	}

	overview := Project(resolved, func(rel Resolved) bool {
		return rel.CounterpartID == keep
	})

	if len(overview.Active) != 1 || overview.Active[0].CounterpartID != keep {
		t.Fatalf("filter not applied: %+v", overview.Active)
	}
	if overview.Counts.All != 1 {
		t.Fatalf("counts must reflect the filtered set, got %d", overview.Counts.All)
	}
}

func TestProject_OrderNewestFirst(t *testing.T) {
	older := uuid.New()
	newerID := uuid.New()
	resolved := map[uuid.UUID]Resolved{
		older:   {CounterpartID: older, State: StatePendingIncoming, CreatedAt: time.Now().Add(-time.Hour)},
		newerID: {CounterpartID: newerID, State: StatePendingIncoming, CreatedAt: time.Now()},
	}

	overview := Project(resolved, nil)
	if len(overview.Incoming) != 2 {
		t.Fatalf("expected 2 incoming, got %d", len(overview.Incoming))
	}
	if overview.Incoming[0].CounterpartID != newerID {
		t.Fatalf("expected newest first, got %v", overview.Incoming[0].CounterpartID)
	}
}
