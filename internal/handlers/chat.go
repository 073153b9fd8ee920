package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"relay-backend/internal/middleware"
	"relay-backend/internal/models"
	"relay-backend/internal/services"
)

const (
	msgInvalidBody     = "Invalid request body"
	msgMessageRequired = "Message is required"
	msgFetchFailed     = "Failed to fetch response"
	msgNoValidResponse = "No valid response from model"

	maxChatBodyBytes = 1 << 20
)

type relayer interface {
	Relay(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	relay  relayer
	logger *slog.Logger
}

func NewChatHandler(relay relayer, logger *slog.Logger) *ChatHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{
		relay:  relay,
		logger: logger,
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("request_id", middleware.GetRequestID(r.Context()))

	var req models.ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	// An empty body is a request without a message, not a malformed one.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("chat body rejected", "err", err)
		writeJSON(w, http.StatusBadRequest, errorResp(msgInvalidBody))
		return
	}

	reply, err := h.relay.Relay(r.Context(), req.Message)
	if err != nil {
		h.writeRelayError(w, logger, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

func (h *ChatHandler) writeRelayError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var relayErr *services.RelayError
	if !errors.As(err, &relayErr) {
		logger.Error("chat relay failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorRespWithDetails(msgFetchFailed, err.Error()))
		return
	}

	switch relayErr.Kind {
	case services.ErrorInvalidInput:
		writeJSON(w, http.StatusBadRequest, errorResp(msgMessageRequired))
	case services.ErrorEmptyResponse, services.ErrorMalformedUpstreamShape:
		logger.Error("chat relay failed", "kind", relayErr.Kind, "reason", relayErr.Reason)
		writeJSON(w, http.StatusInternalServerError, errorResp(msgNoValidResponse))
	default:
		details := relayErr.Reason
		if relayErr.Err != nil {
			details = relayErr.Err.Error()
		}
		logger.Error("chat relay failed", "kind", relayErr.Kind, "err", details)
		writeJSON(w, http.StatusInternalServerError, errorRespWithDetails(msgFetchFailed, details))
	}
}
