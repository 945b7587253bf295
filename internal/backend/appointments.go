package backend

import (
	"context"
	"net/http"
)

// ListAppointments fetches all appointments.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var appointments []Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments", nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// GetAppointment fetches a single appointment by id.
func (c *Client) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	if id == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "appointment id is required"}
	}
	var appointment Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/"+escape(id), nil, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// GetAppointmentDetail fetches an appointment together with its patient and
// most recent medical record.
func (c *Client) GetAppointmentDetail(ctx context.Context, id string) (*AppointmentDetailResponse, error) {
	if id == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "appointment id is required"}
	}
	var detail AppointmentDetailResponse
	if err := c.do(ctx, http.MethodGet, "/appointments/"+escape(id)+"/detail", nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateAppointment creates a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	var appointment Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// UpdateAppointment updates an existing appointment.
func (c *Client) UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "appointment id is required"}
	}
	return c.do(ctx, http.MethodPut, "/appointments/"+escape(id), req, nil)
}

// UpdateAppointmentStatus performs a status-only update.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id string, status AppointmentStatus) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "appointment id is required"}
	}
	body := struct {
		Status AppointmentStatus `json:"status"`
	}{Status: status}
	return c.do(ctx, http.MethodPut, "/appointments/"+escape(id)+"/status", body, nil)
}

// DeleteAppointment deletes an appointment.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "appointment id is required"}
	}
	return c.do(ctx, http.MethodDelete, "/appointments/"+escape(id), nil, nil)
}
