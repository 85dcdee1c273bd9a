package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/service"
)

//go:embed templates/confirmation_page.html
var templateFS embed.FS

var confirmationPage = template.Must(template.ParseFS(templateFS, "templates/confirmation_page.html"))

type confirmationHandler struct {
	confirmations service.ConfirmationService
	now           func() time.Time
}

// confirmPage is the link target from the confirmation email. Success renders
// an HTML page; an expired link triggers a replacement plus re-send.
func (h *confirmationHandler) confirmPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "confirmationID")

	user, err := h.confirmations.Confirm(r.Context(), id)
	switch {
	case err == nil:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = confirmationPage.Execute(w, map[string]string{
			"Username": user.Username,
			"Email":    user.Email,
		})
	case errors.Is(err, domain.ErrConfirmationNotFound):
		writeMessage(w, http.StatusNotFound, "confirmation_not_found")
	case errors.Is(err, domain.ErrAlreadyConfirmed):
		writeMessage(w, http.StatusBadRequest, "confirmation_already_confirmed")
	case errors.Is(err, domain.ErrConfirmationExpired):
		writeMessage(w, http.StatusBadRequest, "confirmation_expired_resent")
	case errors.Is(err, domain.ErrMailSend):
		writeInternal(w, "confirmation_resend_fail", err)
	default:
		writeInternal(w, "internal_server_error", err)
	}
}

func (h *confirmationHandler) latest(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r, "userID")
	if !ok {
		writeMessage(w, http.StatusNotFound, "user_not_found")
		return
	}

	rec, err := h.confirmations.LatestForUser(r.Context(), userID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.ConfirmationResponse{
			CurrentTime:  h.now().Unix(),
			Confirmation: rec,
		})
	case errors.Is(err, domain.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "user_not_found")
	default:
		writeMessage(w, http.StatusNotFound, "confirmation_not_found")
	}
}

func (h *confirmationHandler) resend(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r, "userID")
	if !ok {
		writeMessage(w, http.StatusNotFound, "user_not_found")
		return
	}

	err := h.confirmations.Resend(r.Context(), userID)
	switch {
	case err == nil:
		writeMessage(w, http.StatusCreated, "confirmation_resend_successful")
	case errors.Is(err, domain.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "user_not_found")
	case errors.Is(err, domain.ErrAlreadyConfirmed):
		writeMessage(w, http.StatusBadRequest, "confirmation_already_confirmed")
	case errors.Is(err, domain.ErrMailSend):
		writeInternal(w, "confirmation_resend_fail", err)
	default:
		writeInternal(w, "internal_server_error", err)
	}
}
