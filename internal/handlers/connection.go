package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/skilllink/skilllink/internal/connection"
	"github.com/skilllink/skilllink/internal/services"
)

type ConnectionHandler struct {
	connectionService services.ConnectionServiceInterface
}

func NewConnectionHandler(connectionService services.ConnectionServiceInterface) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

type ConnectionRequestRequest struct {
	UserID string `json:"user_id"`
}

type ConnectionActionResponse struct {
	Connection *connection.Resolved `json:"connection,omitempty"`
	Message    string               `json:"message,omitempty"`
}

// Overview serves the connections screen: incoming, outgoing and active
// groups plus counts, optionally narrowed by counterpart role/subject/name.
func (h *ConnectionHandler) Overview(w http.ResponseWriter, r *http.Request) {
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

	overview, err := h.connectionService.Overview(r.Context(), user.ID, filter)
	if err != nil {
		log.Printf("Error building connection overview: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

func (h *ConnectionHandler) Request(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ConnectionRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	toID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	rel, err := h.connectionService.Request(r.Context(), user.ID, toID)
	if errors.Is(err, connection.ErrSelfRequest) {
		writeError(w, http.StatusBadRequest, "Cannot send a connection request to yourself")
		return
	}
	if errors.Is(err, connection.ErrDuplicateRequest) {
		writeError(w, http.StatusConflict, "A connection already exists with this user")
		return
	}
	if errors.Is(err, connection.ErrInvalidRecord) {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if err != nil {
		log.Printf("Error sending connection request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, ConnectionActionResponse{
		Connection: rel,
		Message:    "Connection request sent",
	})
}

func (h *ConnectionHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, "accept")
}

func (h *ConnectionHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, "decline")
}

func (h *ConnectionHandler) answer(w http.ResponseWriter, r *http.Request, action string) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	recordID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid connection ID")
		return
	}

	var rel *connection.Resolved
	var message string
	if action == "accept" {
		rel, err = h.connectionService.Accept(r.Context(), recordID, user.ID)
		message = "Connection request accepted"
	} else {
		rel, err = h.connectionService.Decline(r.Context(), recordID, user.ID)
		message = "Connection request declined"
	}

	if errors.Is(err, connection.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Connection request not found")
		return
	}
	if errors.Is(err, connection.ErrNotAuthorized) {
		writeError(w, http.StatusForbidden, "Only the recipient can answer this request")
		return
	}
	if errors.Is(err, connection.ErrInvalidState) {
		writeError(w, http.StatusConflict, "Request is no longer pending")
		return
	}
	if errors.Is(err, connection.ErrPreconditionFailed) {
		writeError(w, http.StatusConflict, "Request was answered by a concurrent action, reload and try again")
		return
	}
	if err != nil {
		log.Printf("Error answering connection request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ConnectionActionResponse{
		Connection: rel,
		Message:    message,
	})
}

func (h *ConnectionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	recordID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid connection ID")
		return
	}

	err = h.connectionService.Cancel(r.Context(), recordID, user.ID)
	if errors.Is(err, connection.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Connection request not found")
		return
	}
	if errors.Is(err, connection.ErrNotAuthorized) {
		writeError(w, http.StatusForbidden, "Only the requester can cancel this request")
		return
	}
	if errors.Is(err, connection.ErrInvalidState) {
		writeError(w, http.StatusConflict, "Request is no longer pending")
		return
	}
	if err != nil {
		log.Printf("Error canceling connection request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, ConnectionActionResponse{Message: "Connection request canceled"})
}
