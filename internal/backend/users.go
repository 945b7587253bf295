package backend

import (
	"context"
	"net/http"
)

// ListUsers fetches all dashboard users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "user id is required"}
	}
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+escape(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user. The password is write-only.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "user id is required"}
	}
	return c.do(ctx, http.MethodPut, "/users/"+escape(id), req, nil)
}

// ChangeUserPassword sets a new password for the user.
func (c *Client) ChangeUserPassword(ctx context.Context, id string, req ChangePasswordRequest) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "user id is required"}
	}
	return c.do(ctx, http.MethodPut, "/users/"+escape(id)+"/password", req, nil)
}

// DeactivateUser deactivates a user account.
func (c *Client) DeactivateUser(ctx context.Context, id string) error {
	if id == "" {
		return &Error{Status: http.StatusBadRequest, Message: "user id is required"}
	}
	return c.do(ctx, http.MethodDelete, "/users/"+escape(id), nil, nil)
}
