package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

type contextKey string

const sessionIDKey contextKey = "sessionID"

// WithID returns a context carrying the active session ID.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// IDFromContext returns the session ID stored by WithID, if any.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// Manager issues and resolves session cookies. The cookie carries an
// HMAC-signed JWT whose subject is the Redis session ID, so a tampered cookie
// never reaches the store.
type Manager struct {
	store      *Store
	logger     *logging.Logger
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager creates a session manager around the given store.
func NewManager(store *Store, logger *logging.Logger, secret, cookieName string, ttl time.Duration, secure bool) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{
		store:      store,
		logger:     logger.Named("session"),
		secret:     []byte(secret),
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Create opens a new session holding the backend token and sets the cookie.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, token string, user backend.User) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return Session{}, err
	}

	signed, err := m.signCookie(sess.ID)
	if err != nil {
		return Session{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// Resolve reads the session cookie, verifies its signature and loads the
// session from the store.
func (m *Manager) Resolve(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return Session{}, ErrNotFound
	}
	id, err := m.verifyCookie(cookie.Value)
	if err != nil {
		m.logger.Warn("rejected session cookie", "error", err)
		return Session{}, ErrNotFound
	}
	return m.store.Get(r.Context(), id)
}

// Destroy removes the session and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, id string) error {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return m.store.Delete(ctx, id)
}

// Invalidate deletes the session identified by the request context, if any.
// Wired as a backend unauthorized subscriber so a stale backend token tears
// down the session that carried it.
func (m *Manager) Invalidate(ctx context.Context) {
	id, ok := IDFromContext(ctx)
	if !ok {
		return
	}
	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.Error("invalidate session", "error", err)
		return
	}
	m.logger.Info("session invalidated after backend unauthorized", "session_id", id)
}

func (m *Manager) signCookie(id string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

func (m *Manager) verifyCookie(value string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(value, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session cookie: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}
