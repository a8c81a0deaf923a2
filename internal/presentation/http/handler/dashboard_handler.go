package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smartbiz/smartbiz-api/internal/application/service"
	"github.com/smartbiz/smartbiz-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get returns the dashboard payload, optionally bounded by from/to dates
func (h *DashboardHandler) Get(c *gin.Context) {
	from := parseDateQuery(c.Query("from"))
	to := parseDateQuery(c.Query("to"))

	data, err := h.dashboardService.GetDashboard(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", data)
}
