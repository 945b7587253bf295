package backend

import (
	"context"
	"net/http"
)

// GetDashboard fetches the aggregate dashboard payload.
func (c *Client) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	var dashboard DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}
