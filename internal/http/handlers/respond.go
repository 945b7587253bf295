// Package handlers implements the dashboard's HTTP surface. Every response
// uses the same {success, data, message} envelope the upstream backend speaks,
// so the UI deals with one shape end to end.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/internal/forms"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{Message: message})
}

// respondBackendError relays a normalized backend error. Transport failures
// (no status) surface as 502 so the UI can tell "backend down" from "bad
// request".
func respondBackendError(w http.ResponseWriter, err error) {
	if e, ok := backend.AsError(err); ok {
		status := e.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		env := envelope{Message: e.Message}
		if len(e.Errors) > 0 {
			env.Errors = e.Errors
		}
		writeJSON(w, status, env)
		return
	}
	writeJSON(w, http.StatusInternalServerError, envelope{Message: "An error occurred"})
}

// formPayload is the render-ready model of one form.
type formPayload struct {
	Form   string            `json:"form"`
	Fields []forms.FieldView `json:"fields"`
}

func respondForm(w http.ResponseWriter, form forms.Form, values forms.Values, errs map[string]string) {
	respondData(w, http.StatusOK, formPayload{Form: form.Name, Fields: form.Schema(values, errs)})
}

// respondValidationErrors returns 422 with the per-field errors and a form
// schema that echoes the submitted values, so a failed submit never clears
// the user's input.
func respondValidationErrors(w http.ResponseWriter, form forms.Form, values forms.Values, errs map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, envelope{
		Message: "Validation failed",
		Errors:  errs,
		Data:    formPayload{Form: form.Name, Fields: form.Schema(values, errs)},
	})
}

// backendFieldErrors flattens a backend 422 errors map to one message per
// field, matching the local validation shape.
func backendFieldErrors(e *backend.Error) map[string]string {
	errs := make(map[string]string, len(e.Errors))
	for field, messages := range e.Errors {
		if len(messages) > 0 {
			errs[field] = messages[0]
		}
	}
	return errs
}

// submitError handles a failed create/update submission: backend field errors
// re-render the form, everything else collapses to a generic retry message.
func submitError(w http.ResponseWriter, form forms.Form, values forms.Values, err error, fallback string) {
	if e, ok := backend.AsError(err); ok {
		if backend.IsValidation(err) {
			respondValidationErrors(w, form, values, backendFieldErrors(e))
			return
		}
		if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
			respondBackendError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusBadGateway, envelope{Message: fallback})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func decodeError(w http.ResponseWriter) {
	badRequest(w, "Invalid request body")
}
