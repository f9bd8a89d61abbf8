package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/models"
	"github.com/skilllink/skilllink/internal/services"
)

type EventHandler struct {
	eventService services.EventServiceInterface
}

func NewEventHandler(eventService services.EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	MeetingLink string `json:"meeting_link"`
	Capacity    int    `json:"capacity"`
}

type EventListResponse struct {
	Events []models.Event `json:"events"`
}

type EventResponse struct {
	Event   *models.Event `json:"event,omitempty"`
	Message string        `json:"message,omitempty"`
}

type AttendeeListResponse struct {
	Attendees []models.EventAttendee `json:"attendees"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.eventService.Create(r.Context(), models.CreateEventParams{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Category:    req.Category,
		Location:    req.Location,
		MeetingLink: req.MeetingLink,
		Capacity:    req.Capacity,
		CreatedBy:   user.ID,
	})
	if errors.Is(err, services.ErrEventTitleMissing) ||
		errors.Is(err, services.ErrInvalidEventDate) ||
		errors.Is(err, services.ErrInvalidEventTime) ||
		errors.Is(err, services.ErrInvalidCapacity) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("Error creating event: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, EventResponse{Event: event})
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	events, err := h.eventService.List(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing events: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, EventListResponse{Events: events})
}

func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	err = h.eventService.Join(r.Context(), eventID, user.ID)
	if errors.Is(err, services.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if errors.Is(err, services.ErrAlreadyJoined) {
		writeError(w, http.StatusConflict, "Already joined this event")
		return
	}
	if errors.Is(err, services.ErrEventFull) {
		writeError(w, http.StatusConflict, "Event is at capacity")
		return
	}
	if err != nil {
		log.Printf("Error joining event: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, EventResponse{Message: "Joined event"})
}

func (h *EventHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	if err := h.eventService.Leave(r.Context(), eventID, user.ID); err != nil {
		log.Printf("Error leaving event: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, EventResponse{Message: "Left event"})
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	err = h.eventService.Delete(r.Context(), eventID, user.ID)
	if errors.Is(err, services.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	if errors.Is(err, services.ErrNotEventOrganizer) {
		writeError(w, http.StatusForbidden, "Only the organizer can delete an event")
		return
	}
	if err != nil {
		log.Printf("Error deleting event: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, EventResponse{Message: "Event deleted"})
}

func (h *EventHandler) Attendees(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	attendees, err := h.eventService.Attendees(r.Context(), eventID)
	if err != nil {
		log.Printf("Error listing attendees: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, AttendeeListResponse{Attendees: attendees})
}
