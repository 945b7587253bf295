package backend

import (
	"context"
	"net/http"
)

// ListPatients fetches all patients.
func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	var patients []Patient
	if err := c.do(ctx, http.MethodGet, "/patients", nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// GetPatient fetches a single patient by id.
func (c *Client) GetPatient(ctx context.Context, id string) (*Patient, error) {
	if id == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "patient id is required"}
	}
	var patient Patient
	if err := c.do(ctx, http.MethodGet, "/patients/"+escape(id), nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// GetPatientDetail fetches a patient together with their recent appointments
// and medical history. Aggregation happens server-side.
func (c *Client) GetPatientDetail(ctx context.Context, id string) (*PatientDetailResponse, error) {
	if id == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "patient id is required"}
	}
	var detail PatientDetailResponse
	if err := c.do(ctx, http.MethodGet, "/patients/"+escape(id)+"/detail", nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreatePatient creates a new patient.
func (c *Client) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	var patient Patient
	if err := c.do(ctx, http.MethodPost, "/patients", req, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// UpdatePatient updates an existing patient.
func (c *Client) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "patient id is required"}
	}
	return c.do(ctx, http.MethodPut, "/patients/"+escape(id), req, nil)
}

// DeletePatient deletes a patient.
func (c *Client) DeletePatient(ctx context.Context, id string) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "patient id is required"}
	}
	return c.do(ctx, http.MethodDelete, "/patients/"+escape(id), nil, nil)
}
