package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/filedepot/filedepot-go/internal/service"
)

type contextKey string

const userIDKey contextKey = "userID"

// SessionResolver resolves an opaque session token to a user id.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (string, error)
}

// SessionAuth returns middleware that validates the X-Token header against
// the session store and loads the user id into the request context.
func SessionAuth(auth SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Token")

			userID, err := auth.ResolveSession(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id from the request
// context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
