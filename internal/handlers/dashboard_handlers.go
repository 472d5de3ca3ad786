package handlers

import (
	"net/http"

	"gym_crm_backend/internal/services"
	"gym_crm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler holds the dashboard service.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// GetSummary handles fetching the front-desk dashboard numbers.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary()
	if err != nil {
		utils.LogError(err, "GetSummary: Error from dashboardService.GetSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch dashboard summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
