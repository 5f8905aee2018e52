package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrtoldo/backend/internal/domain/catalog"
	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/domain/trade"
	"github.com/mrtoldo/backend/internal/infrastructure/logger"
	"github.com/mrtoldo/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Errors returned by QuotationService
var (
	ErrQuotationNotFound     = shared.NotFound("Quotation not found")
	ErrUnknownCustomer       = shared.InvalidInput("Please select a customer.")
	ErrUnknownBillingDetails = shared.InvalidInput("Please select billing details.")
	ErrMissingPrice          = shared.InvalidInput("Every product needs a price.")
)

// CacheInvalidator drops cached aggregates derived from quotations
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// QuotationService handles quotation business operations
type QuotationService struct {
	quotationRepo trade.QuotationRepository
	customerRepo  partner.CustomerRepository
	billingRepo   partner.BillingDetailsRepository
	productRepo   catalog.ProductRepository
	invalidator   CacheInvalidator
	metrics       *telemetry.QuotationMetrics
	logger        *zap.Logger
}

// NewQuotationService creates a new QuotationService. invalidator may be nil.
func NewQuotationService(
	quotationRepo trade.QuotationRepository,
	customerRepo partner.CustomerRepository,
	billingRepo partner.BillingDetailsRepository,
	productRepo catalog.ProductRepository,
	invalidator CacheInvalidator,
	logger *zap.Logger,
) *QuotationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotationService{
		quotationRepo: quotationRepo,
		customerRepo:  customerRepo,
		billingRepo:   billingRepo,
		productRepo:   productRepo,
		invalidator:   invalidator,
		logger:        logger,
	}
}

// SetMetrics sets the quotation metrics recorder
func (s *QuotationService) SetMetrics(m *telemetry.QuotationMetrics) {
	s.metrics = m
}

// Create validates the references and writes the quotation with its items
func (s *QuotationService) Create(ctx context.Context, req QuotationRequest) (*QuotationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quotation", "create",
		telemetry.SpanAttrItemCount, len(req.Items))
	defer span.End()

	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	quotation, err := trade.NewQuotation(in)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, quotation); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Failed to create quotation", zap.Error(err))
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrQuotationID, quotation.ID)
	s.metrics.RecordQuotation(ctx, telemetry.SourceCreate, quotation.Total)

	s.invalidate(ctx)
	resp := ToQuotationResponse(quotation)
	return &resp, nil
}

// GetByID retrieves a live quotation with its items
func (s *QuotationService) GetByID(ctx context.Context, id int64) (*QuotationResponse, error) {
	quotation, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(quotation)
	return &resp, nil
}

// List retrieves a page of quotations, newest first
func (s *QuotationService) List(ctx context.Context, filter QuotationListFilter) ([]QuotationListResponse, int64, error) {
	domainFilter := filter.toDomain()

	summaries, err := s.quotationRepo.FindFiltered(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.quotationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToQuotationListResponses(summaries), total, nil
}

// Update replaces the quotation fields and all of its line items
func (s *QuotationService) Update(ctx context.Context, id int64, req QuotationRequest) (*QuotationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quotation", "update",
		telemetry.SpanAttrQuotationID, id,
		telemetry.SpanAttrItemCount, len(req.Items))
	defer span.End()

	quotation, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	if err := quotation.Update(in); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, quotation); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Failed to update quotation", zap.Int64("quotation_id", id), zap.Error(err))
		return nil, notFoundAs(err, ErrQuotationNotFound)
	}

	s.invalidate(ctx)
	resp := ToQuotationResponse(quotation)
	return &resp, nil
}

// UpdateStatus marks a quotation paid or pending
func (s *QuotationService) UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) error {
	status := trade.QuotationStatus(req.Status)
	if !status.IsValid() {
		return shared.InvalidInput("Please select a valid status.")
	}

	if err := s.quotationRepo.UpdateStatus(ctx, id, status); err != nil {
		return notFoundAs(err, ErrQuotationNotFound)
	}

	s.invalidate(ctx)
	return nil
}

// Duplicate copies a quotation and its items into a new pending quotation dated now
func (s *QuotationService) Duplicate(ctx context.Context, id int64) (*QuotationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quotation", "duplicate",
		telemetry.SpanAttrQuotationID, id)
	defer span.End()

	dup, err := s.quotationRepo.Duplicate(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, notFoundAs(err, ErrQuotationNotFound)
	}

	logger.L(ctx).Info("Quotation duplicated",
		zap.Int64("source_id", id),
		zap.Int64("quotation_id", dup.ID))
	s.metrics.RecordQuotation(ctx, telemetry.SourceDuplicate, dup.Total)

	s.invalidate(ctx)
	resp := ToQuotationResponse(dup)
	return &resp, nil
}

// Delete removes the quotation and its line items
func (s *QuotationService) Delete(ctx context.Context, id int64) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "quotation", "delete",
		telemetry.SpanAttrQuotationID, id)
	defer span.End()

	if err := s.quotationRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return notFoundAs(err, ErrQuotationNotFound)
	}
	s.metrics.RecordQuotationDeleted(ctx)

	s.invalidate(ctx)
	return nil
}

func (s *QuotationService) find(ctx context.Context, id int64) (*trade.Quotation, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrQuotationNotFound)
	}
	return quotation, nil
}

// checkReferences verifies the customer, the live billing details and every live product exist
func (s *QuotationService) checkReferences(ctx context.Context, q *trade.Quotation) error {
	ok, err := s.customerRepo.Exists(ctx, q.CustomerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownCustomer
	}

	ok, err = s.billingRepo.Exists(ctx, q.BillingDetailsID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownBillingDetails
	}

	wanted := q.ProductIDs()
	existing, err := s.productRepo.ExistingIDs(ctx, wanted)
	if err != nil {
		return err
	}
	found := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}
	for _, id := range wanted {
		if _, ok := found[id]; !ok {
			return shared.InvalidInput(fmt.Sprintf("Product %d does not exist", id))
		}
	}
	return nil
}

func (s *QuotationService) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil {
		s.logger.Warn("Dashboard cache not invalidated", zap.Error(err))
	}
}

// notFoundAs replaces a generic not found error with a resource specific one
func notFoundAs(err error, target *shared.DomainError) error {
	if errors.Is(err, shared.ErrNotFound) {
		return target
	}
	return err
}
