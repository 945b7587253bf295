package handlers

import (
	"net/http"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/internal/forms"
	"github.com/medidesk/hospital-admin-bff/internal/http/middleware"
	"github.com/medidesk/hospital-admin-bff/internal/session"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

// AuthHandler handles sign-in, sign-out and the current-user endpoint. On
// login the backend token goes into a server-side session; the browser only
// ever holds the signed session cookie.
type AuthHandler struct {
	backend  *backend.Client
	sessions *session.Manager
	logger   *logging.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(client *backend.Client, sessions *session.Manager, logger *logging.Logger) *AuthHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthHandler{backend: client, sessions: sessions, logger: logger.Named("auth")}
}

// LoginForm renders the sign-in form schema.
// GET /auth/login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	respondForm(w, forms.Login(), nil, nil)
}

// Login validates credentials, authenticates against the backend and opens a
// session. Invalid credentials relay the backend's message without opening
// one.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	values, err := forms.DecodeValues(r)
	if err != nil {
		decodeError(w)
		return
	}

	form := forms.Login()
	if errs := form.Validate(values); len(errs) > 0 {
		respondValidationErrors(w, form, values, errs)
		return
	}

	auth, err := h.backend.Login(r.Context(), values.Get("email"), values.Get("password"))
	if err != nil {
		h.logger.Warn("login failed", "email", values.Get("email"))
		respondBackendError(w, err)
		return
	}

	if _, err := h.sessions.Create(r.Context(), w, auth.Token, auth.User); err != nil {
		h.logger.Error("session create failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{Message: "An error occurred"})
		return
	}
	h.logger.Info("user signed in", "user_id", auth.User.ID, "role", auth.User.Role)
	respondData(w, http.StatusOK, map[string]any{"user": auth.User})
}

// Logout destroys the current session and clears the cookie.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := session.IDFromContext(r.Context()); ok {
		if err := h.sessions.Destroy(r.Context(), w, id); err != nil {
			h.logger.Error("session destroy failed", "error", err)
		}
	}
	respondMessage(w, http.StatusOK, "Signed out")
}

// Me returns the signed-in user from the session.
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, envelope{Message: "Unauthorized - Please log in"})
		return
	}
	respondData(w, http.StatusOK, map[string]any{"user": user})
}
