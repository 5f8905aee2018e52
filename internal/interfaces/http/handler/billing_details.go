package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/mrtoldo/backend/internal/application/partner"
)

// BillingDetailsHandler handles billing details endpoints of the dashboard
type BillingDetailsHandler struct {
	BaseHandler
	billingService *partnerapp.BillingDetailsService
}

// NewBillingDetailsHandler creates a new BillingDetailsHandler
func NewBillingDetailsHandler(billingService *partnerapp.BillingDetailsService) *BillingDetailsHandler {
	return &BillingDetailsHandler{billingService: billingService}
}

// List godoc
// @Summary      List billing details
// @Tags         billing-details
// @Produce      json
// @Param        query      query string false "Search term"
// @Param        page       query int    false "Page number" default(1)
// @Param        page_size  query int    false "Page size" default(6)
// @Success      200 {object} dto.Response{data=[]partnerapp.BillingDetailsResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/billing-details [get]
func (h *BillingDetailsHandler) List(c *gin.Context) {
	var filter partnerapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}
	filter.Search = searchQuery(c, filter.Search)

	billing, total, err := h.billingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, billing, total, filter.Page, pageSizeOf(filter.PageSize))
}

// Options godoc
// @Summary      Billing details options
// @Tags         billing-details
// @Produce      json
// @Success      200 {object} dto.Response{data=[]partnerapp.BillingDetailsOption}
// @Security     BearerAuth
// @Router       /dashboard/billing-details/options [get]
func (h *BillingDetailsHandler) Options(c *gin.Context) {
	options, err := h.billingService.ListOptions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, options)
}

// Create godoc
// @Summary      Create billing details
// @Description  Creates the address and the billing details together
// @Tags         billing-details
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.BillingDetailsRequest true "Billing details"
// @Success      201 {object} dto.Response{data=partnerapp.BillingDetailsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/billing-details [post]
func (h *BillingDetailsHandler) Create(c *gin.Context) {
	var req partnerapp.BillingDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	billing, err := h.billingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, billing)
}

// GetByID godoc
// @Summary      Get billing details
// @Tags         billing-details
// @Produce      json
// @Param        id path int true "Billing details ID"
// @Success      200 {object} dto.Response{data=partnerapp.BillingDetailsResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/billing-details/{id} [get]
func (h *BillingDetailsHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	billing, err := h.billingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, billing)
}

// Update godoc
// @Summary      Update billing details
// @Tags         billing-details
// @Accept       json
// @Produce      json
// @Param        id      path int                              true "Billing details ID"
// @Param        request body partnerapp.BillingDetailsRequest true "Billing details"
// @Success      200 {object} dto.Response{data=partnerapp.BillingDetailsResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/billing-details/{id} [put]
func (h *BillingDetailsHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	var req partnerapp.BillingDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	billing, err := h.billingService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, billing)
}

// Delete godoc
// @Summary      Delete billing details
// @Tags         billing-details
// @Param        id path int true "Billing details ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/billing-details/{id} [delete]
func (h *BillingDetailsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.billingService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
