package backend

import (
	"context"
	"net/http"
)

// ListDoctors fetches all doctors.
func (c *Client) ListDoctors(ctx context.Context) ([]Doctor, error) {
	var doctors []Doctor
	if err := c.do(ctx, http.MethodGet, "/doctors", nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// GetDoctor fetches a single doctor by id.
func (c *Client) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	if id == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "doctor id is required"}
	}
	var doctor Doctor
	if err := c.do(ctx, http.MethodGet, "/doctors/"+escape(id), nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// GetDoctorDetail fetches a doctor together with their recent patients.
func (c *Client) GetDoctorDetail(ctx context.Context, id string) (*DoctorDetailResponse, error) {
	if id == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "doctor id is required"}
	}
	var detail DoctorDetailResponse
	if err := c.do(ctx, http.MethodGet, "/doctors/"+escape(id)+"/detail", nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateDoctor creates a new doctor.
func (c *Client) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	var doctor Doctor
	if err := c.do(ctx, http.MethodPost, "/doctors", req, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// UpdateDoctor updates an existing doctor.
func (c *Client) UpdateDoctor(ctx context.Context, id string, req UpdateDoctorRequest) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "doctor id is required"}
	}
	return c.do(ctx, http.MethodPut, "/doctors/"+escape(id), req, nil)
}

// DeleteDoctor deletes a doctor.
func (c *Client) DeleteDoctor(ctx context.Context, id string) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "doctor id is required"}
	}
	return c.do(ctx, http.MethodDelete, "/doctors/"+escape(id), nil, nil)
}
