package printing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/domain/trade"
	infra "github.com/mrtoldo/backend/internal/infrastructure/printing"
	"github.com/mrtoldo/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrQuotationNotFound is returned when the quotation to print does not exist
var ErrQuotationNotFound = shared.NotFound("Cotización no encontrada")

// HTMLRenderer turns a joined quotation into a printable HTML document
type HTMLRenderer interface {
	Render(detail *trade.QuotationDetail) (string, error)
}

// PDFDocument is a generated quotation PDF
type PDFDocument struct {
	Filename  string
	Content   []byte
	PageCount int
}

// QuotationPDFService generates quotation PDFs
type QuotationPDFService struct {
	quotationRepo trade.QuotationRepository
	template      HTMLRenderer
	renderer      infra.PDFRenderer
	timeout       time.Duration
	metrics       *telemetry.QuotationMetrics
	logger        *zap.Logger
}

// NewQuotationPDFService creates a new QuotationPDFService. timeout bounds each render,
// zero leaves the renderer default.
func NewQuotationPDFService(
	quotationRepo trade.QuotationRepository,
	template HTMLRenderer,
	renderer infra.PDFRenderer,
	timeout time.Duration,
	logger *zap.Logger,
) *QuotationPDFService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotationPDFService{
		quotationRepo: quotationRepo,
		template:      template,
		renderer:      renderer,
		timeout:       timeout,
		logger:        logger,
	}
}

// SetMetrics sets the render metrics recorder
func (s *QuotationPDFService) SetMetrics(m *telemetry.QuotationMetrics) {
	s.metrics = m
}

// Generate loads the quotation with its customer, billing details and products
// and renders it to an A4 PDF. The renderer is not called for missing quotations.
func (s *QuotationPDFService) Generate(ctx context.Context, id int64) (*PDFDocument, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quotation_pdf", "generate",
		telemetry.SpanAttrQuotationID, id)
	defer span.End()

	detail, err := s.quotationRepo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrQuotationNotFound
		}
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to load quotation for PDF", zap.Int64("quotation_id", id), zap.Error(err))
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCustomerID, detail.CustomerID,
		telemetry.SpanAttrItemCount, len(detail.Lines))

	html, err := s.template.Render(detail)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to render quotation template", zap.Int64("quotation_id", id), zap.Error(err))
		return nil, err
	}

	started := time.Now()
	result, err := s.renderer.Render(ctx, &infra.RenderRequest{
		HTML:    html,
		Margins: infra.DefaultMargins(),
		Title:   fmt.Sprintf("Cotización %d", id),
		Timeout: s.timeout,
	})
	s.metrics.RecordPDFRender(ctx, time.Since(started), err)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to render quotation PDF", zap.Int64("quotation_id", id), zap.Error(err))
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrPDFBytes, len(result.PDFData))

	return &PDFDocument{
		Filename:  Filename(id),
		Content:   result.PDFData,
		PageCount: result.PageCount,
	}, nil
}

// Filename returns the attachment name of a quotation PDF
func Filename(id int64) string {
	return fmt.Sprintf("cotizacion-%d.pdf", id)
}
