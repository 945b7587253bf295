package backend

import (
	"context"
	"net/http"
)

// ListMedicalRecords fetches all medical records.
func (c *Client) ListMedicalRecords(ctx context.Context) ([]MedicalRecord, error) {
	var records []MedicalRecord
	if err := c.do(ctx, http.MethodGet, "/records", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetMedicalRecord fetches a single medical record by id.
func (c *Client) GetMedicalRecord(ctx context.Context, id string) (*MedicalRecord, error) {
	if id == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "record id is required"}
	}
	var record MedicalRecord
	if err := c.do(ctx, http.MethodGet, "/records/"+escape(id), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateMedicalRecord creates a new medical record.
func (c *Client) CreateMedicalRecord(ctx context.Context, req CreateMedicalRecordRequest) (*MedicalRecord, error) {
	var record MedicalRecord
	if err := c.do(ctx, http.MethodPost, "/records", req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateMedicalRecord updates an existing medical record.
func (c *Client) UpdateMedicalRecord(ctx context.Context, id string, req UpdateMedicalRecordRequest) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "record id is required"}
	}
	return c.do(ctx, http.MethodPut, "/records/"+escape(id), req, nil)
}

// DeleteMedicalRecord deletes a medical record.
func (c *Client) DeleteMedicalRecord(ctx context.Context, id string) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "record id is required"}
	}
	return c.do(ctx, http.MethodDelete, "/records/"+escape(id), nil, nil)
}
