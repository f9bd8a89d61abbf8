package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Date          string    `json:"date"` // dd/mm/yyyy, as entered by the organizer
	Time          string    `json:"time"`
	Category      string    `json:"category"`
	Location      string    `json:"location"`
	MeetingLink   string    `json:"meeting_link"`
	Capacity      int       `json:"capacity"`
	CreatedBy     uuid.UUID `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	AttendeeCount int       `json:"attendee_count"`
	Joined        bool      `json:"joined"` // whether the viewing user attends
}

type CreateEventParams struct {
	Title       string
	Date        string
	Time        string
	Category    string
	Location    string
	MeetingLink string
	Capacity    int
	CreatedBy   uuid.UUID
}

type EventAttendee struct {
	EventID  uuid.UUID `json:"event_id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}
