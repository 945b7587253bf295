package backend

import (
	"context"
	"net/http"
)

// ListActivities fetches the backend-generated audit trail.
func (c *Client) ListActivities(ctx context.Context) ([]Activity, error) {
	var activities []Activity
	if err := c.do(ctx, http.MethodGet, "/activities", nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}
