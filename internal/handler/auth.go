package handler

import (
	"errors"
	"net/http"

	"github.com/filedepot/filedepot-go/internal/model"
	"github.com/filedepot/filedepot-go/internal/service"
)

// AuthHandler handles HTTP requests for session login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleConnect handles GET /connect requests. Credentials arrive in a
// Basic authorization header; any failure answers the same 401.
func (h *AuthHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	token, err := h.auth.LoginBasic(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{Token: token})
}

// HandleDisconnect handles GET /disconnect requests.
func (h *AuthHandler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	err := h.auth.Logout(r.Context(), r.Header.Get("X-Token"))
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
