package handlers

import (
	"net/http"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/internal/table"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

// ActivitiesHandler serves the read-only activity log page.
type ActivitiesHandler struct {
	backend *backend.Client
	logger  *logging.Logger
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(client *backend.Client, logger *logging.Logger) *ActivitiesHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ActivitiesHandler{backend: client, logger: logger.Named("activities")}
}

func activitiesTable() table.Table[backend.Activity] {
	return table.Table[backend.Activity]{
		ID: func(a backend.Activity) string { return a.ID },
		Columns: []table.Column[backend.Activity]{
			{Header: "Title", Key: "title", Sortable: true},
			{Header: "Type", Key: "type"},
			{Header: "Description", Key: "description"},
			{Header: "Time", Key: "timestamp", Sortable: true},
		},
	}
}

// List renders the activity table. Activities are backend-generated and have
// no row actions.
// GET /activities
func (h *ActivitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.backend.ListActivities(r.Context())
	if err != nil {
		respondBackendError(w, err)
		return
	}

	opts := table.ParseOptions(r.URL.Query())
	opts.SearchPlaceholder = "Search activities..."
	opts.EmptyMessage = "No recent activity."
	respondData(w, http.StatusOK, map[string]any{
		"table": activitiesTable().Build(activities, opts),
	})
}
