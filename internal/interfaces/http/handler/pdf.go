package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	printingapp "github.com/mrtoldo/backend/internal/application/printing"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/infrastructure/logger"
	"github.com/mrtoldo/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// QuotationPDFGenerator renders quotation PDFs
type QuotationPDFGenerator interface {
	Generate(ctx context.Context, id int64) (*printingapp.PDFDocument, error)
}

// PDFHandler serves quotation PDF downloads
type PDFHandler struct {
	BaseHandler
	generator QuotationPDFGenerator
}

// NewPDFHandler creates a new PDFHandler
func NewPDFHandler(generator QuotationPDFGenerator) *PDFHandler {
	return &PDFHandler{generator: generator}
}

// QuotationPDF godoc
// @Summary      Download quotation PDF
// @Description  Renders the quotation with its customer, products and payment details as an A4 PDF
// @Tags         quotations
// @Produce      application/pdf
// @Param        id path int true "Quotation ID"
// @Success      200 {file} binary
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotations/{id}/pdf [get]
func (h *PDFHandler) QuotationPDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.BadRequest(c, "ID de cotización inválido")
		return
	}

	doc, err := h.generator.Generate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, printingapp.ErrQuotationNotFound.Message)
			return
		}
		logger.L(c.Request.Context()).Error("Quotation PDF generation failed",
			zap.Int64("quotation_id", id), zap.Error(err))
		h.Error(c, http.StatusInternalServerError, dto.ErrCodePDFGeneration, "Failed to generate PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
