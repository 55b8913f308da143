package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hospilog/internal/services"
	"hospilog/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
}

func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Get dashboard report
// @Description Accounts by role, orders, shipments and vehicles by status, invoice totals, a new-orders series and top destinations
// @Tags Dashboard
// @Produce json
// @Param last_days query int    false "Lookback in days (default 30, max 366)"
// @Param interval  query string false "Bucket size: day | week | month (default: day)"
// @Param tz        query string false "IANA timezone for bucketing (default: UTC)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (p *DashboardController) GetDashboard(c *gin.Context) {
	lastDays := 0
	if raw := c.Query("last_days"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			utils.RespondError(c, http.StatusBadRequest, "last_days must be a positive integer")
			return
		}
		lastDays = d
	}

	report, err := p.dashboardService.BuildDashboard(c.Request.Context(), lastDays, c.Query("interval"), c.Query("tz"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard data fetched successfully")
}
