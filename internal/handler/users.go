package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/filedepot/filedepot-go/internal/middleware"
	"github.com/filedepot/filedepot-go/internal/model"
	"github.com/filedepot/filedepot-go/internal/service"
)

// UsersHandler handles HTTP requests for account management.
type UsersHandler struct {
	users *service.UsersService
	auth  *service.AuthService
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(users *service.UsersService, auth *service.AuthService) *UsersHandler {
	return &UsersHandler{users: users, auth: auth}
}

// HandleRegister handles POST /users requests.
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.users.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingEmail):
			writeJSON(w, http.StatusBadRequest, errorResponse("Missing email"))
		case errors.Is(err, service.ErrMissingPassword):
			writeJSON(w, http.StatusBadRequest, errorResponse("Missing password"))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, errorResponse("Already exist"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleMe handles GET /users/me requests.
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	resp, err := h.users.GetMe(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles GET /delete requests, removing the authenticated
// account and ending its session.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Unauthorized"))
		return
	}

	if err := h.users.DeleteAccount(r.Context(), userID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	// The account is gone; a failure to drop the session only leaves a key
	// that expires on its own.
	_ = h.auth.Logout(r.Context(), r.Header.Get("X-Token"))

	w.WriteHeader(http.StatusNoContent)
}
