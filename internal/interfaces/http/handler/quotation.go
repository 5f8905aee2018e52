package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/mrtoldo/backend/internal/application/trade"
)

// QuotationHandler handles quotation endpoints of the dashboard
type QuotationHandler struct {
	BaseHandler
	quotationService *tradeapp.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler
func NewQuotationHandler(quotationService *tradeapp.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// List godoc
// @Summary      List quotations
// @Description  Newest first, filtered by customer, total or status
// @Tags         quotations
// @Produce      json
// @Param        query      query string false "Search term"
// @Param        status     query string false "pending or paid"
// @Param        page       query int    false "Page number" default(1)
// @Param        page_size  query int    false "Page size" default(6)
// @Success      200 {object} dto.Response{data=[]tradeapp.QuotationListResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	var filter tradeapp.QuotationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}
	filter.Search = searchQuery(c, filter.Search)

	quotations, total, err := h.quotationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, quotations, total, filter.Page, pageSizeOf(filter.PageSize))
}

// Create godoc
// @Summary      Create a quotation
// @Description  Subtotal and total are computed from the items; total adds 16% IVA when iva is set
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.QuotationRequest true "Quotation"
// @Success      201 {object} dto.Response{data=tradeapp.QuotationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	var req tradeapp.QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	quotation, err := h.quotationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, quotation)
}

// GetByID godoc
// @Summary      Get a quotation
// @Tags         quotations
// @Produce      json
// @Param        id path int true "Quotation ID"
// @Success      200 {object} dto.Response{data=tradeapp.QuotationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	quotation, err := h.quotationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quotation)
}

// Update godoc
// @Summary      Update a quotation
// @Description  Replaces the quotation and all of its items
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        id      path int                       true "Quotation ID"
// @Param        request body tradeapp.QuotationRequest true "Quotation"
// @Success      200 {object} dto.Response{data=tradeapp.QuotationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	var req tradeapp.QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	quotation, err := h.quotationService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quotation)
}

// UpdateStatus godoc
// @Summary      Change quotation status
// @Tags         quotations
// @Accept       json
// @Param        id      path int                          true "Quotation ID"
// @Param        request body tradeapp.UpdateStatusRequest true "Status"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	var req tradeapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	if err := h.quotationService.UpdateStatus(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Duplicate godoc
// @Summary      Duplicate a quotation
// @Description  Copies the quotation and its items in one transaction
// @Tags         quotations
// @Produce      json
// @Param        id path int true "Quotation ID"
// @Success      201 {object} dto.Response{data=tradeapp.QuotationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/quotations/{id}/duplicate [post]
func (h *QuotationHandler) Duplicate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	quotation, err := h.quotationService.Duplicate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, quotation)
}

// Delete godoc
// @Summary      Delete a quotation
// @Description  Removes the items and then the quotation in one transaction
// @Tags         quotations
// @Param        id path int true "Quotation ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
