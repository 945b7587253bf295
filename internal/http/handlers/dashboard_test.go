package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardOverview(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, map[string]any{
			"stats": map[string]any{
				"patientsCount": 12, "doctorsCount": 4,
				"appointmentsCount": 30, "medicalRecordsCount": 57,
			},
			"recentActivities":     []any{},
			"upcomingAppointments": []any{},
		}, "")
	}))
	h := NewDashboardHandler(client, nil)

	rec := httptest.NewRecorder()
	h.Overview(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	stats := resp["data"].(map[string]any)["stats"].(map[string]any)
	assert.Equal(t, float64(12), stats["patientsCount"])
}

func TestDashboardDegradesToZeroedStats(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h := NewDashboardHandler(client, nil)

	rec := httptest.NewRecorder()
	h.Overview(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code, "backend outage must not error the landing page")
	resp := decodeBody(t, rec)
	data := resp["data"].(map[string]any)
	stats := data["stats"].(map[string]any)
	assert.Equal(t, float64(0), stats["patientsCount"])
	assert.Empty(t, data["recentActivities"])
}

func TestDashboardStillBouncesUnauthorized(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	h := NewDashboardHandler(client, nil)

	rec := httptest.NewRecorder()
	h.Overview(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "Unauthorized - Please log in", resp["message"])
}
