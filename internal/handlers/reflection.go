package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/skilllink/skilllink/internal/models"
	"github.com/skilllink/skilllink/internal/services"
)

type ReflectionHandler struct {
	reflectionService services.ReflectionServiceInterface
}

func NewReflectionHandler(reflectionService services.ReflectionServiceInterface) *ReflectionHandler {
	return &ReflectionHandler{reflectionService: reflectionService}
}

type CreateReflectionRequest struct {
	SessionDate string `json:"session_date"`
	Mentor      string `json:"mentor"`
	Notes       string `json:"notes"`
	Rating      int    `json:"rating"`
}

type ReflectionResponse struct {
	Reflection *models.Reflection `json:"reflection"`
}

type ReflectionListResponse struct {
	Reflections []models.Reflection `json:"reflections"`
}

func (h *ReflectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reflection, err := h.reflectionService.Create(r.Context(), models.CreateReflectionParams{
		UserID:      user.ID,
		SessionDate: req.SessionDate,
		Mentor:      req.Mentor,
		Notes:       req.Notes,
		Rating:      req.Rating,
	})
	if errors.Is(err, services.ErrInvalidRating) ||
		errors.Is(err, services.ErrInvalidSessionDate) ||
		errors.Is(err, services.ErrMentorNameMissing) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("Error creating reflection: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, ReflectionResponse{Reflection: reflection})
}

// List returns the caller's own reflections, newest first. Reflections are
// private to their author.
func (h *ReflectionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	reflections, err := h.reflectionService.ListByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing reflections: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ReflectionListResponse{Reflections: reflections})
}
