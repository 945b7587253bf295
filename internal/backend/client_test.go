package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, logging.Default())
}

func TestDoUnwrapsEnvelope(t *testing.T) {
	var gotAuth, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"id":"p1","name":"John Smith","age":45}]}`))
	})

	ctx := WithToken(context.Background(), "tok-123")
	patients, err := client.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "John Smith", patients[0].Name)
	assert.Equal(t, 45, patients[0].Age)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestDoWithoutTokenOmitsAuthorization(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"data":[]}`))
	})

	_, err := client.ListPatients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDoEnvelopeFailureFlag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Something broke"}`))
	})

	_, err := client.ListPatients(context.Background())
	require.Error(t, err)
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Something broke", be.Message)
}

func TestDoNormalizes401AndEmitsSignalOnce(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false}`))
	})

	var emits int32
	client.OnUnauthorized(func(ctx context.Context) {
		atomic.AddInt32(&emits, 1)
	})

	_, err := client.GetPatient(context.Background(), "p1")
	require.Error(t, err)
	require.True(t, IsUnauthorized(err))
	be, _ := AsError(err)
	assert.Equal(t, "Unauthorized - Please log in", be.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&emits))
}

func TestDoNormalizes404(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false}`))
	})

	_, err := client.GetDoctor(context.Background(), "missing")
	require.True(t, IsNotFound(err))
	be, _ := AsError(err)
	assert.Equal(t, "Resource not found", be.Message)
}

func TestDoBodyMessageTakesPrecedence(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Patient does not exist"}`))
	})

	_, err := client.GetPatient(context.Background(), "missing")
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Patient does not exist", be.Message)
}

func TestDoNormalizes422WithFieldErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success":false,"message":"Validation failed","errors":{"email":["Email already taken"]}}`))
	})

	_, err := client.CreatePatient(context.Background(), CreatePatientRequest{Name: "John"})
	require.True(t, IsValidation(err))
	be, _ := AsError(err)
	assert.Equal(t, []string{"Email already taken"}, be.Errors["email"])
}

func TestDoNormalizes5xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`oops`))
	})

	_, err := client.ListDoctors(context.Background())
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, be.Status)
	assert.Equal(t, "Server error - Please try again later", be.Message)
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, logging.Default())
	srv.Close()

	_, err := client.ListPatients(context.Background())
	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 0, be.Status)
	assert.Equal(t, "No response from server. Please check your connection.", be.Message)
}

func TestEmptyIDRejectedLocally(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.GetPatient(context.Background(), "")
	require.Error(t, err)
	assert.False(t, called, "empty id must not reach the backend")
}

func TestUpdateAppointmentStatusPath(t *testing.T) {
	var gotPath, gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"success":true}`))
	})

	err := client.UpdateAppointmentStatus(context.Background(), "a1", StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, "/appointments/a1/status", gotPath)
	assert.Equal(t, http.MethodPut, gotMethod)
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"token":"tok-1","user":{"id":"u1","name":"Admin","email":"admin@example.com","role":"Admin","isActive":true}}}`))
	})

	auth, err := client.Login(context.Background(), "admin@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", auth.Token)
	assert.Equal(t, RoleAdmin, auth.User.Role)
}
