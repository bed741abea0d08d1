package handlers

import (
	"net/http"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (handler *DashboardHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	snapshot := handler.dashboardService.Snapshot(r.Context(), user.ID)
	writeJSON(w, http.StatusOK, snapshot)
}
