package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/skilllink/skilllink/internal/models"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventTitleMissing = errors.New("event title is required")
	ErrInvalidEventDate  = errors.New("event date must be dd/mm/yyyy")
	ErrInvalidEventTime  = errors.New("event time must be hh:mm")
	ErrInvalidCapacity   = errors.New("event capacity must be positive")
	ErrEventFull         = errors.New("event is at capacity")
	ErrAlreadyJoined     = errors.New("already joined this event")
	ErrNotEventOrganizer = errors.New("only the organizer can delete an event")
)

type EventService struct {
	db DBConn
}

func NewEventService(db DBConn) *EventService {
	return &EventService{db: db}
}

func (s *EventService) Create(ctx context.Context, params models.CreateEventParams) (*models.Event, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrEventTitleMissing
	}
	if _, err := time.Parse("02/01/2006", params.Date); err != nil {
		return nil, ErrInvalidEventDate
	}
	if _, err := time.Parse("15:04", params.Time); err != nil {
		return nil, ErrInvalidEventTime
	}
	if params.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	event := &models.Event{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO events (title, date, time, category, location, meeting_link, capacity, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, title, date, time, category, location, meeting_link, capacity, created_by, created_at`,
		params.Title, params.Date, params.Time, params.Category, params.Location, params.MeetingLink, params.Capacity, params.CreatedBy,
	).Scan(&event.ID, &event.Title, &event.Date, &event.Time, &event.Category, &event.Location, &event.MeetingLink, &event.Capacity, &event.CreatedBy, &event.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	return event, nil
}

// List returns all upcoming events newest first, with the attendee count and
// whether the viewing user already joined.
func (s *EventService) List(ctx context.Context, viewerID uuid.UUID) ([]models.Event, error) {
	rows, err := s.db.Query(ctx,
		`SELECT e.id, e.title, e.date, e.time, e.category, e.location, e.meeting_link, e.capacity, e.created_by, e.created_at,
		        COUNT(a.user_id), COALESCE(BOOL_OR(a.user_id = $1), false)
		 FROM events e
		 LEFT JOIN event_attendees a ON a.event_id = e.id
		 GROUP BY e.id
		 ORDER BY e.created_at DESC`,
		viewerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.Category, &e.Location, &e.MeetingLink, &e.Capacity, &e.CreatedBy, &e.CreatedAt, &e.AttendeeCount, &e.Joined); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}

	if events == nil {
		events = []models.Event{}
	}

	return events, nil
}

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event := &models.Event{}
	err := s.db.QueryRow(ctx,
		`SELECT id, title, date, time, category, location, meeting_link, capacity, created_by, created_at
		 FROM events WHERE id = $1`,
		id,
	).Scan(&event.ID, &event.Title, &event.Date, &event.Time, &event.Category, &event.Location, &event.MeetingLink, &event.Capacity, &event.CreatedBy, &event.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return event, nil
}

// Join adds the user to the event. Capacity is enforced inside the insert so
// two concurrent joins cannot both take the last seat.
func (s *EventService) Join(ctx context.Context, eventID, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, eventID); err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx,
		`INSERT INTO event_attendees (event_id, user_id)
		 SELECT $1, $2
		 WHERE (SELECT COUNT(*) FROM event_attendees WHERE event_id = $1) <
		       (SELECT capacity FROM events WHERE id = $1)
		 ON CONFLICT (event_id, user_id) DO NOTHING`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("joining event: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var joined bool
		err := s.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM event_attendees WHERE event_id = $1 AND user_id = $2)`,
			eventID, userID,
		).Scan(&joined)
		if err != nil {
			return fmt.Errorf("checking attendance: %w", err)
		}
		if joined {
			return ErrAlreadyJoined
		}
		return ErrEventFull
	}

	return nil
}

func (s *EventService) Leave(ctx context.Context, eventID, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2",
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("leaving event: %w", err)
	}
	return nil
}

func (s *EventService) Delete(ctx context.Context, eventID, userID uuid.UUID) error {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatedBy != userID {
		return ErrNotEventOrganizer
	}

	_, err = s.db.Exec(ctx, "DELETE FROM events WHERE id = $1", eventID)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

func (s *EventService) Attendees(ctx context.Context, eventID uuid.UUID) ([]models.EventAttendee, error) {
	rows, err := s.db.Query(ctx,
		`SELECT a.event_id, a.user_id, u.display_name, a.joined_at
		 FROM event_attendees a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.event_id = $1
		 ORDER BY a.joined_at`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing attendees: %w", err)
	}
	defer rows.Close()

	var attendees []models.EventAttendee
	for rows.Next() {
		var a models.EventAttendee
		if err := rows.Scan(&a.EventID, &a.UserID, &a.Name, &a.JoinedAt); err != nil {
			return nil, fmt.Errorf("scanning attendee: %w", err)
		}
		attendees = append(attendees, a)
	}

	if attendees == nil {
		attendees = []models.EventAttendee{}
	}

	return attendees, nil
}
