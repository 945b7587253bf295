package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appointmentJSON(status string) map[string]any {
	return map[string]any{
		"id":        "a1",
		"patientId": "p1",
		"doctorId":  "d1",
		"type":      "check-up",
		"dateTime":  "2026-09-01T10:00:00Z",
		"duration":  30,
		"status":    status,
		"location":  "Room 204",
	}
}

func TestUpdateStatusSameStateIsNoOp(t *testing.T) {
	var statusCalls atomic.Int32
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/appointments/a1":
			writeEnvelope(w, http.StatusOK, true, appointmentJSON("Confirmed"), "")
		case r.Method == http.MethodPut && r.URL.Path == "/appointments/a1/status":
			statusCalls.Add(1)
			writeEnvelope(w, http.StatusOK, true, nil, "")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	h := NewAppointmentsHandler(client, nil)

	req := httptest.NewRequest(http.MethodPut, "/appointments/a1/status", strings.NewReader(`{"status":"Confirmed"}`))
	req = withURLParam(req, "id", "a1")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, statusCalls.Load(), "selecting the current status must not hit the backend")

	resp := decodeBody(t, rec)
	data := resp["data"].(map[string]any)
	appt := data["appointment"].(map[string]any)
	assert.Equal(t, "Confirmed", appt["status"])
}

func TestUpdateStatusTransitionsOnceAndRefetches(t *testing.T) {
	var statusCalls, getCalls atomic.Int32
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/appointments/a1":
			getCalls.Add(1)
			status := "Confirmed"
			if statusCalls.Load() > 0 {
				status = "Completed"
			}
			writeEnvelope(w, http.StatusOK, true, appointmentJSON(status), "")
		case r.Method == http.MethodPut && r.URL.Path == "/appointments/a1/status":
			statusCalls.Add(1)
			writeEnvelope(w, http.StatusOK, true, nil, "")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	h := NewAppointmentsHandler(client, nil)

	req := httptest.NewRequest(http.MethodPut, "/appointments/a1/status", strings.NewReader(`{"status":"Completed"}`))
	req = withURLParam(req, "id", "a1")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(1), statusCalls.Load(), "exactly one status update")
	assert.Equal(t, int32(2), getCalls.Load(), "guard read plus refetch")

	resp := decodeBody(t, rec)
	data := resp["data"].(map[string]any)
	appt := data["appointment"].(map[string]any)
	assert.Equal(t, "Completed", appt["status"], "response reflects stored state")

	// The refreshed action list disables the new current status.
	actions := data["statusActions"].([]any)
	for _, a := range actions {
		action := a.(map[string]any)
		disabled := action["disabled"].(bool)
		assert.Equal(t, action["status"] == "Completed", disabled)
	}
}

func TestUpdateStatusRejectsUnknownState(t *testing.T) {
	var calls atomic.Int32
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	h := NewAppointmentsHandler(client, nil)

	req := httptest.NewRequest(http.MethodPut, "/appointments/a1/status", strings.NewReader(`{"status":"Archived"}`))
	req = withURLParam(req, "id", "a1")
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, calls.Load())
}

func TestAppointmentDetailToleratesRelatedLookupFailure(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/appointments/a1":
			writeEnvelope(w, http.StatusOK, true, appointmentJSON("Scheduled"), "")
		case r.URL.Path == "/patients/p1":
			writeEnvelope(w, http.StatusOK, true, map[string]any{"id": "p1", "name": "John Smith"}, "")
		case r.URL.Path == "/doctors/d1":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	h := NewAppointmentsHandler(client, nil)

	req := httptest.NewRequest(http.MethodGet, "/appointments/a1", nil)
	req = withURLParam(req, "id", "a1")
	rec := httptest.NewRecorder()
	h.Detail(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	data := resp["data"].(map[string]any)
	require.NotNil(t, data["patient"])
	assert.Nil(t, data["doctor"], "failed doctor lookup degrades to empty panel")
	assert.NotEmpty(t, data["statusActions"])
}

func TestAppointmentListJoinsNames(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/appointments":
			writeEnvelope(w, http.StatusOK, true, []map[string]any{appointmentJSON("Scheduled")}, "")
		case "/patients":
			writeEnvelope(w, http.StatusOK, true, []map[string]any{{"id": "p1", "name": "John Smith"}}, "")
		case "/doctors":
			writeEnvelope(w, http.StatusOK, true, []map[string]any{{"id": "d2", "name": "Dr. Other"}}, "")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	h := NewAppointmentsHandler(client, nil)

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	tbl := resp["data"].(map[string]any)["table"].(map[string]any)
	rows := tbl["rows"].([]any)
	require.Len(t, rows, 1)
	cells := rows[0].(map[string]any)["cells"].([]any)
	assert.Equal(t, "John Smith", cells[0])
	assert.Equal(t, "Unknown doctor", cells[1], "missing doctor falls back to placeholder")
}
