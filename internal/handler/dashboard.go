package handler

import (
	"net/http"

	"github.com/templui/studyokr/internal/ctxkeys"
	"github.com/templui/studyokr/internal/service"
	"github.com/templui/studyokr/internal/ui"
	"github.com/templui/studyokr/internal/ui/pages"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	overview, err := h.dashboardService.Overview(r.Context(), user.ID)
	if err != nil {
		pageError(w, r, "load dashboard", err, "user_id", user.ID)
		return
	}

	ui.Render(w, r, pages.Dashboard(overview))
}
