package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skilllink/skilllink/internal/connection"
	"github.com/skilllink/skilllink/internal/logging"
	"github.com/skilllink/skilllink/internal/models"
)

// PostgresConnectionStore persists connection records and implements the
// compare-and-set contract with conditional UPDATEs. The partial unique index
// on the user pair backstops duplicate requests under concurrency.
type PostgresConnectionStore struct {
	db DBConn
}

func NewPostgresConnectionStore(db DBConn) *PostgresConnectionStore {
	return &PostgresConnectionStore{db: db}
}

func (s *PostgresConnectionStore) ListInvolving(ctx context.Context, userID uuid.UUID) ([]models.Connection, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, requester_id, receiver_id, status, created_at
		 FROM connections
		 WHERE requester_id = $1 OR receiver_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}
	defer rows.Close()

	var records []models.Connection
	for rows.Next() {
		var rec models.Connection
		if err := rows.Scan(&rec.ID, &rec.RequesterID, &rec.ReceiverID, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning connection: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (s *PostgresConnectionStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Connection, error) {
	rec := &models.Connection{}
	err := s.db.QueryRow(ctx,
		`SELECT id, requester_id, receiver_id, status, created_at
		 FROM connections WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.RequesterID, &rec.ReceiverID, &rec.Status, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, connection.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting connection: %w", err)
	}
	return rec, nil
}

func (s *PostgresConnectionStore) Create(ctx context.Context, requesterID, receiverID uuid.UUID) (*models.Connection, error) {
	rec := &models.Connection{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO connections (requester_id, receiver_id, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING id, requester_id, receiver_id, status, created_at`,
		requesterID, receiverID,
	).Scan(&rec.ID, &rec.RequesterID, &rec.ReceiverID, &rec.Status, &rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, connection.ErrDuplicateRequest
		}
		return nil, fmt.Errorf("creating connection: %w", err)
	}
	return rec, nil
}

func (s *PostgresConnectionStore) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next models.ConnectionStatus) (*models.Connection, error) {
	rec := &models.Connection{}
	err := s.db.QueryRow(ctx,
		`UPDATE connections SET status = $3
		 WHERE id = $1 AND status = $2
		 RETURNING id, requester_id, receiver_id, status, created_at`,
		id, expected, next,
	).Scan(&rec.ID, &rec.RequesterID, &rec.ReceiverID, &rec.Status, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a vanished record from a lost race.
		current, getErr := s.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("%w: record is %s", connection.ErrPreconditionFailed, current.Status)
	}
	if err != nil {
		return nil, fmt.Errorf("updating connection status: %w", err)
	}
	return rec, nil
}

func (s *PostgresConnectionStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, "DELETE FROM connections WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}
	return nil
}

// ConnectionEntry is a resolved relationship decorated with the counterpart's
// public profile for display.
type ConnectionEntry struct {
	RecordID uuid.UUID        `json:"record_id"`
	State    connection.State `json:"state"`
	Since    time.Time        `json:"since"`
	Profile  models.Profile   `json:"profile"`
}

// ConnectionOverview is the connections screen payload.
type ConnectionOverview struct {
	Incoming []ConnectionEntry `json:"incoming"`
	Outgoing []ConnectionEntry `json:"outgoing"`
	Active   []ConnectionEntry `json:"active"`
	Counts   connection.Counts `json:"counts"`
}

// ProfileProvider supplies public profiles for decoration and filtering.
type ProfileProvider interface {
	GetProfilesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Profile, error)
}

// ConnectionNotifier delivers out-of-band notifications about connection
// activity. Implementations must not block the caller.
type ConnectionNotifier interface {
	ConnectionRequested(ctx context.Context, toUserID, fromUserID uuid.UUID)
	ConnectionAccepted(ctx context.Context, toUserID, byUserID uuid.UUID)
}

// ConnectionService wires the transition engine to storage, decorates resolved
// relationships with profiles, and fans out notifications.
type ConnectionService struct {
	engine   *connection.Engine
	profiles ProfileProvider
	notifier ConnectionNotifier
	logger   *logging.Logger
}

func NewConnectionService(store connection.Store, profiles ProfileProvider, notifier ConnectionNotifier, logger *logging.Logger) *ConnectionService {
	if logger == nil {
		logger = logging.Default
	}
	return &ConnectionService{
		engine:   connection.NewEngine(store),
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
	}
}

// Overview resolves the user's relationships and projects them into display
// groups. The filter narrows by counterpart profile and is applied before
// counting, so the tab counts always match the visible rows.
func (s *ConnectionService) Overview(ctx context.Context, userID uuid.UUID, filter models.ProfileFilter) (*ConnectionOverview, error) {
	resolved, anomalies, err := s.engine.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range anomalies {
		s.logger.Warn("duplicate active connection records", map[string]interface{}{
			"user_id":        userID.String(),
			"counterpart_id": a.CounterpartID.String(),
			"record_ids":     recordIDStrings(a.RecordIDs),
		})
	}

	ids := make([]uuid.UUID, 0, len(resolved))
	for id := range resolved {
		ids = append(ids, id)
	}
	profiles, err := s.profiles.GetProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var pred func(connection.Resolved) bool
	if filter.Role != "" || filter.Subject != "" || strings.TrimSpace(filter.Query) != "" {
		pred = func(rel connection.Resolved) bool {
			profile, ok := profiles[rel.CounterpartID]
			if !ok {
				return false
			}
			return matchesProfile(profile, filter)
		}
	}

	base := connection.Project(resolved, pred)

	return &ConnectionOverview{
		Incoming: decorate(base.Incoming, profiles),
		Outgoing: decorate(base.Outgoing, profiles),
		Active:   decorate(base.Active, profiles),
		Counts:   base.Counts,
	}, nil
}

func (s *ConnectionService) Request(ctx context.Context, fromID, toID uuid.UUID) (*connection.Resolved, error) {
	rel, err := s.engine.Request(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.ConnectionRequested(ctx, toID, fromID)
	}
	return rel, nil
}

func (s *ConnectionService) Accept(ctx context.Context, recordID, actorID uuid.UUID) (*connection.Resolved, error) {
	rel, err := s.engine.Accept(ctx, recordID, actorID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.ConnectionAccepted(ctx, rel.CounterpartID, actorID)
	}
	return rel, nil
}

func (s *ConnectionService) Decline(ctx context.Context, recordID, actorID uuid.UUID) (*connection.Resolved, error) {
	return s.engine.Decline(ctx, recordID, actorID)
}

func (s *ConnectionService) Cancel(ctx context.Context, recordID, actorID uuid.UUID) error {
	return s.engine.Cancel(ctx, recordID, actorID)
}

// Connected reports whether the two users have an accepted connection.
func (s *ConnectionService) Connected(ctx context.Context, userID, otherID uuid.UUID) (bool, error) {
	return s.engine.Connected(ctx, userID, otherID)
}

func matchesProfile(profile models.Profile, filter models.ProfileFilter) bool {
	if filter.Role != "" && profile.Role != filter.Role {
		return false
	}
	if filter.Subject != "" && !strings.EqualFold(profile.Subject, filter.Subject) {
		return false
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		name := strings.ToLower(profile.DisplayName)
		subject := strings.ToLower(profile.Subject)
		q := strings.ToLower(query)
		if !strings.Contains(name, q) && !strings.Contains(subject, q) {
			return false
		}
	}
	return true
}

func decorate(group []connection.Resolved, profiles map[uuid.UUID]models.Profile) []ConnectionEntry {
	entries := make([]ConnectionEntry, 0, len(group))
	for _, rel := range group {
		profile, ok := profiles[rel.CounterpartID]
		if !ok {
			// Counterpart account is gone; keep the row with a bare ID.
			profile = models.Profile{ID: rel.CounterpartID}
		}
		entries = append(entries, ConnectionEntry{
			RecordID: rel.RecordID,
			State:    rel.State,
			Since:    rel.CreatedAt,
			Profile:  profile,
		})
	}
	return entries
}

func recordIDStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
