package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invisifeed/internal/models/response_models"
	"invisifeed/internal/services"
	"invisifeed/pkg/utils"
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
// @Summary Build the owner's analytics dashboard
// @Description KPIs, invoice/feedback time series and recent feedback for the selected period
// @Tags Dashboard
// @Produce json
// @Param start query string false "Period start (RFC3339)"
// @Param end query string false "Period end (RFC3339)"
// @Param interval query string false "Bucket interval: day, week or month" default(day)
// @Param tz query string false "Timezone for bucketing, e.g. Asia/Kolkata"
// @Success 200 {object} response_models.DashboardReport
// @Security BearerAuth
// @Router /dashboard [get]
func (d *DashboardController) GetDashboard(c *gin.Context) {
	ownerID := c.GetString("owner_id")

	rng := response_models.TimeRange{
		Interval: c.DefaultQuery("interval", "day"),
		Timezone: c.Query("tz"),
	}
	switch rng.Interval {
	case "day", "week", "month":
	default:
		utils.RespondError(c, http.StatusBadRequest, "Interval must be day, week or month")
		return
	}

	if s := c.Query("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid start time, expected RFC3339")
			return
		}
		rng.Start = t
	}
	if e := c.Query("end"); e != "" {
		t, err := time.Parse(time.RFC3339, e)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid end time, expected RFC3339")
			return
		}
		rng.End = t
	}

	report, err := d.dashboardService.BuildDashboard(c.Request.Context(), ownerID, rng)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard built successfully")
}
