package handlers

import (
	"net/http"

	"github.com/medidesk/hospital-admin-bff/internal/backend"
	"github.com/medidesk/hospital-admin-bff/pkg/logging"
)

// DashboardHandler serves the landing page overview.
type DashboardHandler struct {
	backend *backend.Client
	logger  *logging.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(client *backend.Client, logger *logging.Logger) *DashboardHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardHandler{backend: client, logger: logger.Named("dashboard")}
}

// Overview returns the aggregate stats, recent activities and upcoming
// appointments. When the backend aggregate fails the page degrades to zeroed
// stats and empty lists instead of erroring, except for auth failures which
// must still bounce the user to login.
// GET /dashboard
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.backend.GetDashboard(r.Context())
	if err != nil {
		if backend.IsUnauthorized(err) {
			respondBackendError(w, err)
			return
		}
		h.logger.Error("dashboard fetch failed, serving zeroed stats", "error", err)
		respondData(w, http.StatusOK, backend.DashboardResponse{
			RecentActivities:     []backend.Activity{},
			UpcomingAppointments: []backend.UpcomingAppointment{},
		})
		return
	}
	respondData(w, http.StatusOK, dashboard)
}
