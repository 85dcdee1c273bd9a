package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront/internal/domain"
	"storefront/internal/dto"
	"storefront/internal/service"
	"storefront/internal/service/impl"
)

type userHandler struct {
	auth   service.AuthService
	tokens service.TokenService
	users  UserStore
}

func (h *userHandler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "field_blank", "body")
		return
	}
	for field, value := range map[string]string{
		"username": req.Username,
		"password": req.Password,
		"email":    req.Email,
	} {
		if value == "" {
			writeMessage(w, http.StatusBadRequest, "field_blank", field)
			return
		}
	}

	_, err := h.auth.Register(r.Context(), req)
	switch {
	case err == nil:
		writeMessage(w, http.StatusCreated, "register_success")
	case errors.Is(err, domain.ErrUsernameExists):
		writeMessage(w, http.StatusBadRequest, "user_already_exists")
	case errors.Is(err, domain.ErrEmailExists):
		writeMessage(w, http.StatusBadRequest, "email_already_exists")
	case errors.Is(err, impl.ErrInvalidEmail):
		writeMessage(w, http.StatusBadRequest, "invalid_email")
	case errors.Is(err, domain.ErrMailSend):
		writeInternal(w, "email_send_failed", err)
	default:
		writeInternal(w, "failed_to_create", err)
	}
}

func (h *userHandler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "field_blank", "body")
		return
	}
	if req.Username == "" {
		writeMessage(w, http.StatusBadRequest, "field_blank", "username")
		return
	}
	if req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "field_blank", "password")
		return
	}

	pair, err := h.auth.Login(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, pair)
	case errors.Is(err, domain.ErrNotConfirmed):
		writeMessage(w, http.StatusBadRequest, "not_confirmed", req.Username)
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, impl.ErrEmptyCredential):
		writeMessage(w, http.StatusUnauthorized, "invalid_credentials")
	default:
		writeInternal(w, "internal_server_error", err)
	}
}

func (h *userHandler) logout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeMissingToken(w)
		return
	}
	if err := h.auth.Logout(r.Context(), claims); err != nil {
		writeInternal(w, "internal_server_error", err)
		return
	}
	writeMessage(w, http.StatusOK, "user_logged_out", claims.UserID)
}

func (h *userHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeMissingToken(w)
		return
	}

	access, err := h.tokens.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeTokenError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AccessTokenResponse{AccessToken: access})
}

func (h *userHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "user_not_found")
		return
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "user_not_found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *userHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "user_not_found")
		return
	}
	if _, err := h.users.GetByID(r.Context(), id); err != nil {
		writeMessage(w, http.StatusNotFound, "user_not_found")
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		writeInternal(w, "internal_server_error", err)
		return
	}
	writeMessage(w, http.StatusOK, "user_deleted")
}

func userIDParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
