package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/messages"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeMessage renders the localized text for a message key.
func writeMessage(w http.ResponseWriter, status int, key string, args ...any) {
	writeJSON(w, status, dto.MessageResponse{Message: messages.Get(key, args...)})
}

// writeTokenError maps token failures onto the stable 401 error envelope.
func writeTokenError(w http.ResponseWriter, err error) {
	var resp dto.AuthErrorResponse
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		resp = dto.AuthErrorResponse{Error: "token_expired", Description: "The token has expired."}
	case errors.Is(err, domain.ErrTokenRevoked):
		resp = dto.AuthErrorResponse{Error: "token_revoked", Description: "The token has been revoked."}
	case errors.Is(err, domain.ErrTokenNotFresh):
		resp = dto.AuthErrorResponse{Error: "fresh_token_required", Description: "The token is not fresh."}
	default:
		resp = dto.AuthErrorResponse{Error: "invalid_token", Description: "Signature verification failed."}
	}
	writeJSON(w, http.StatusUnauthorized, resp)
}

func writeMissingToken(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, dto.AuthErrorResponse{
		Error:       "authorization_required",
		Description: "Request does not contain an access token.",
	})
}

// writeInternal hides unexpected failures behind a generic message key while
// logging the cause.
func writeInternal(w http.ResponseWriter, key string, err error) {
	slog.Error("request failed", "error", err)
	writeMessage(w, http.StatusInternalServerError, key)
}
