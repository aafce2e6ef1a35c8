package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/logger"
)

// Every API response carries "success"; result fields are flattened next to it.

// ErrorResponse represents a failed call
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ValidationErrorResponse adds per-field messages to an ErrorResponse
type ValidationErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

// StartGameResponse is returned by POST /games
type StartGameResponse struct {
	Success bool `json:"success"`
	*domain.StartResult
}

// GameStateResponse is returned by GET /games/{sessionID}
type GameStateResponse struct {
	Success bool `json:"success"`
	*domain.GameState
}

// HistoryResponse is returned by GET /games/{sessionID}/history
type HistoryResponse struct {
	Success bool                   `json:"success"`
	History []domain.HistoryRecord `json:"history"`
}

// SpinResponse is returned by POST /games/{sessionID}/spin
type SpinResponse struct {
	Success bool `json:"success"`
	*domain.SpinResult
}

// EndRoundResponse is returned by POST /games/{sessionID}/end-round
type EndRoundResponse struct {
	Success bool `json:"success"`
	*domain.EndRoundResult
}

// BuyItemResponse is returned by POST /games/{sessionID}/items
type BuyItemResponse struct {
	Success bool `json:"success"`
	*domain.BuyItemResult
}

// ShopItemsResponse is returned by GET /shop/items
type ShopItemsResponse struct {
	Success bool          `json:"success"`
	Items   []domain.Item `json:"items"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// RespondError sends the failure envelope
func RespondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Success: false, Error: message})
}

// mapServiceError maps domain errors to an HTTP status and a user-facing message
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidationFailure):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFound
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFound
	case errors.Is(err, domain.ErrSessionTerminal):
		return http.StatusConflict, ErrMsgGameOver
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, ErrMsgNotEnoughMoney
	case errors.Is(err, domain.ErrInsufficientTickets):
		return http.StatusUnprocessableEntity, ErrMsgNotEnoughTickets
	case errors.Is(err, domain.ErrLockContention):
		return http.StatusConflict, ErrMsgOperationInProgress
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}

// respondServiceError logs err and writes the mapped failure envelope
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := mapServiceError(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "error", err, "path", r.URL.Path)
	} else {
		log.Info(LogMsgServiceError, "error", err, "status", status)
	}

	if errors.Is(err, domain.ErrLockContention) {
		w.Header().Set(HeaderRetryAfter, RetryAfterContention)
	}
	RespondError(w, status, message)
}
