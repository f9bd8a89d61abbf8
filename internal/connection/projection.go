package connection

import (
	"sort"

	"github.com/google/uuid"
)

// Overview groups resolved relationships the way the connections screen
// consumes them: incoming requests, sent requests, and active connections,
// plus the tab counts.
type Overview struct {
	Incoming []Resolved `json:"incoming"`
	Outgoing []Resolved `json:"outgoing"`
	Active   []Resolved `json:"active"`
	Counts   Counts     `json:"counts"`
}

type Counts struct {
	All     int `json:"all"`     // everything except declined
	Pending int `json:"pending"` // incoming + outgoing
	Active  int `json:"active"`
}

// Project turns a resolved map into display groups. The optional filter is a
// pure post-filter over the resolved set (e.g. by counterpart role); it never
// touches the store. Declined relationships are excluded from all groups and
// from Counts.All. Group ordering is newest first, ties broken by counterpart
// id, so identical input always projects identically.
func Project(resolved map[uuid.UUID]Resolved, filter func(Resolved) bool) *Overview {
	overview := &Overview{
		Incoming: []Resolved{},
		Outgoing: []Resolved{},
		Active:   []Resolved{},
	}

	for _, rel := range resolved {
		if filter != nil && !filter(rel) {
			continue
		}
		switch rel.State {
		case StatePendingIncoming:
			overview.Incoming = append(overview.Incoming, rel)
		case StatePendingOutgoing:
			overview.Outgoing = append(overview.Outgoing, rel)
		case StateAccepted:
			overview.Active = append(overview.Active, rel)
		}
	}

	sortGroup(overview.Incoming)
	sortGroup(overview.Outgoing)
	sortGroup(overview.Active)

	overview.Counts = Counts{
		All:     len(overview.Incoming) + len(overview.Outgoing) + len(overview.Active),
		Pending: len(overview.Incoming) + len(overview.Outgoing),
		Active:  len(overview.Active),
	}
	return overview
}

func sortGroup(group []Resolved) {
	sort.Slice(group, func(i, j int) bool {
		if !group[i].CreatedAt.Equal(group[j].CreatedAt) {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		}
		return group[i].CounterpartID.String() < group[j].CounterpartID.String()
	})
}
