package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ankurnehra/bodega/internal/domain"
)

type contextKey string

const userContextKey contextKey = "current_user"

// WithUserID injects the authenticated user's ID into the context.
func WithUserID(ctx context.Context, id domain.UserID) context.Context {
	return context.WithValue(ctx, userContextKey, id)
}

// UserIDFromContext returns the authenticated user's ID, or false when the
// request never passed the auth middleware.
func UserIDFromContext(ctx context.Context) (domain.UserID, bool) {
	id, ok := ctx.Value(userContextKey).(domain.UserID)
	return id, ok
}

func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
