package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/service/chat"
)

const maxChatBody = 64 << 10

type chatService interface {
	Ask(ctx context.Context, question string) (chat.Answer, error)
}

// ChatHandler serves the natural-language query endpoint.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat")}
}

type chatRequest struct {
	Query string `json:"query"`
}

// Ask handles POST /api/chat.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter")
		return
	}

	answer, err := h.svc.Ask(r.Context(), req.Query)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}
