package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/internal/session"
)

type contextKey string

const userKey contextKey = "sessionUser"

// SessionAuth resolves the session cookie and primes the request context with
// the backend bearer token, the session ID and the signed-in user. Requests
// without a valid session get a 401 envelope.
func SessionAuth(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Resolve(r)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"message": "Unauthorized - Please log in",
				})
				return
			}

			ctx := backend.WithToken(r.Context(), sess.Token)
			ctx = session.WithID(ctx, sess.ID)
			ctx = context.WithValue(ctx, userKey, sess.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the signed-in user placed by SessionAuth.
func UserFromContext(ctx context.Context) (backend.User, bool) {
	user, ok := ctx.Value(userKey).(backend.User)
	return user, ok
}
