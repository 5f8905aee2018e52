package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mrtoldo/backend/internal/application/dashboard"
)

// DashboardHandler serves the aggregates of the dashboard home page
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboard.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Cards godoc
// @Summary      Dashboard cards
// @Description  Quotation and customer counts with paid and pending totals
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=dashboard.CardData}
// @Security     BearerAuth
// @Router       /dashboard/cards [get]
func (h *DashboardHandler) Cards(c *gin.Context) {
	cards, err := h.dashboardService.CardData(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cards)
}

// LatestQuotations godoc
// @Summary      Latest quotations
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=[]dashboard.LatestQuotation}
// @Security     BearerAuth
// @Router       /dashboard/latest-quotations [get]
func (h *DashboardHandler) LatestQuotations(c *gin.Context) {
	latest, err := h.dashboardService.LatestQuotations(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, latest)
}

// Revenue godoc
// @Summary      Monthly revenue
// @Description  Revenue per month, oldest first, for the chart
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=[]dashboard.RevenuePoint}
// @Security     BearerAuth
// @Router       /dashboard/revenue [get]
func (h *DashboardHandler) Revenue(c *gin.Context) {
	revenue, err := h.dashboardService.Revenue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenue)
}
