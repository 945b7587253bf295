package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/internal/http/handlers"
	"github.com/medidesk/hospital-admin-bff/internal/session"
)

// fakeHospitalBackend is a minimal upstream speaking the response envelope.
type fakeHospitalBackend struct {
	unauthorized atomic.Bool
}

func (f *fakeHospitalBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.unauthorized.Load() {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/auth/login":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "backend-jwt",
				"user":  map[string]any{"id": "u1", "name": "Admin", "role": "Admin"},
			},
		})
	case "/dashboard":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"stats":                map[string]any{"patientsCount": 3},
				"recentActivities":     []any{},
				"upcomingAppointments": []any{},
			},
		})
	case "/patients":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": "p1", "name": "John Smith", "age": 45}},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestRouter(t *testing.T, upstream *fakeHospitalBackend) http.Handler {
	t.Helper()

	backendSrv := httptest.NewServer(upstream)
	t.Cleanup(backendSrv.Close)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := session.NewStore(redisClient, time.Hour)
	sessions := session.NewManager(store, nil, "secret", "hospital_session", time.Hour, false)

	client := backend.NewClient(backendSrv.URL, nil)
	client.OnUnauthorized(sessions.Invalidate)

	return New(&Config{
		Sessions:     sessions,
		Auth:         handlers.NewAuthHandler(client, sessions, nil),
		Dashboard:    handlers.NewDashboardHandler(client, nil),
		Patients:     handlers.NewPatientsHandler(client, nil),
		Doctors:      handlers.NewDoctorsHandler(client, nil),
		Appointments: handlers.NewAppointmentsHandler(client, nil),
		Records:      handlers.NewRecordsHandler(client, nil),
		Users:        handlers.NewUsersHandler(client, nil),
		Activities:   handlers.NewActivitiesHandler(client, nil),
	})
}

func login(t *testing.T, r http.Handler) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@hospital.example","password":"supersecret"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestHealthIsPublic(t *testing.T) {
	r := newTestRouter(t, &fakeHospitalBackend{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardedRoutesRequireSession(t *testing.T) {
	r := newTestRouter(t, &fakeHospitalBackend{})
	for _, path := range []string{"/api/dashboard", "/api/patients", "/api/users", "/api/auth/me"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestLoginThenBrowse(t *testing.T) {
	r := newTestRouter(t, &fakeHospitalBackend{})
	cookies := login(t, r)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin")
}

func TestBackendUnauthorizedTearsDownSession(t *testing.T) {
	upstream := &fakeHospitalBackend{}
	r := newTestRouter(t, upstream)
	cookies := login(t, r)

	// The backend token goes stale: every upstream call now returns 401.
	upstream.unauthorized.Store(true)

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized - Please log in")

	// The unauthorized signal invalidated the session, so even after the
	// backend recovers the old cookie no longer works.
	upstream.unauthorized.Store(false)
	req = httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	r := newTestRouter(t, &fakeHospitalBackend{})
	cookies := login(t, r)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
