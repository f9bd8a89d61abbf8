package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/models"
	"github.com/skilllink/skilllink/internal/services"
)

type ProfileHandler struct {
	userService services.UserServiceInterface
}

func NewProfileHandler(userService services.UserServiceInterface) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

type ProfileListResponse struct {
	Profiles []models.Profile `json:"profiles"`
}

type ProfileResponse struct {
	Profile models.Profile `json:"profile"`
}

// List serves the user directory with optional role, subject and name filters.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter, ok := profileFilterFromQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Role must be student or mentor")
		return
	}

	profiles, err := h.userService.ListProfiles(r.Context(), user.ID, filter)
	if err != nil {
		log.Printf("Error listing profiles: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ProfileListResponse{Profiles: profiles})
}

// Get serves a single public profile. Only the public fields are exposed,
// never the email or password hash.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer := GetUserFromContext(r.Context())
	if viewer == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{Profile: models.Profile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		Subject:     user.Subject,
	}})
}

func profileFilterFromQuery(r *http.Request) (models.ProfileFilter, bool) {
	filter := models.ProfileFilter{
		Subject: r.URL.Query().Get("subject"),
		Query:   r.URL.Query().Get("q"),
	}
	if role := strings.TrimSpace(r.URL.Query().Get("role")); role != "" {
		parsed := models.UserRole(strings.ToLower(role))
		if !parsed.Valid() {
			return models.ProfileFilter{}, false
		}
		filter.Role = parsed
	}
	return filter, true
}
