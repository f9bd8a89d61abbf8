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

type MessageHandler struct {
	messageService services.MessageServiceInterface
}

func NewMessageHandler(messageService services.MessageServiceInterface) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type MessageResponse struct {
	Message *models.Message `json:"message"`
}

type MessageListResponse struct {
	Messages []models.Message `json:"messages"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	recipientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recipient ID")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.messageService.Send(r.Context(), user.ID, recipientID, req.Body)
	if errors.Is(err, services.ErrEmptyMessage) {
		writeError(w, http.StatusBadRequest, "Message body is empty")
		return
	}
	if errors.Is(err, services.ErrMessageTooBig) {
		writeError(w, http.StatusBadRequest, "Message body too long")
		return
	}
	if errors.Is(err, services.ErrMessageSelf) {
		writeError(w, http.StatusBadRequest, "Cannot message yourself")
		return
	}
	if errors.Is(err, services.ErrNotConnected) {
		writeError(w, http.StatusForbidden, "You can only message your connections")
		return
	}
	if err != nil {
		log.Printf("Error sending message: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: msg})
}

// Conversation returns the full history with another user, oldest first.
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	otherID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	messages, err := h.messageService.ListConversation(r.Context(), user.ID, otherID)
	if errors.Is(err, services.ErrMessageSelf) {
		writeError(w, http.StatusBadRequest, "Cannot open a conversation with yourself")
		return
	}
	if errors.Is(err, services.ErrNotConnected) {
		writeError(w, http.StatusForbidden, "You can only message your connections")
		return
	}
	if err != nil {
		log.Printf("Error listing conversation: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, MessageListResponse{Messages: messages})
}
