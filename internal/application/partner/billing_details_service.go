package partner

import (
	"context"

	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/mrtoldo/backend/internal/domain/shared"
)

// ErrBillingDetailsNotFound is returned when the billing details do not exist or were deleted
var ErrBillingDetailsNotFound = shared.NotFound("Billing details not found")

// BillingDetailsService handles billing details and their inline address
type BillingDetailsService struct {
	billingRepo partner.BillingDetailsRepository
}

// NewBillingDetailsService creates a new BillingDetailsService
func NewBillingDetailsService(billingRepo partner.BillingDetailsRepository) *BillingDetailsService {
	return &BillingDetailsService{billingRepo: billingRepo}
}

// Create creates billing details together with their address
func (s *BillingDetailsService) Create(ctx context.Context, req BillingDetailsRequest) (*BillingDetailsResponse, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	billing, err := partner.NewBillingDetails(in)
	if err != nil {
		return nil, err
	}

	if err := s.billingRepo.Save(ctx, billing); err != nil {
		return nil, err
	}

	resp := ToBillingDetailsResponse(billing)
	return &resp, nil
}

// GetByID retrieves live billing details with their address
func (s *BillingDetailsService) GetByID(ctx context.Context, id int64) (*BillingDetailsResponse, error) {
	billing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBillingDetailsResponse(billing)
	return &resp, nil
}

// List retrieves a page of billing details with their quotation counts
func (s *BillingDetailsService) List(ctx context.Context, filter ListFilter) ([]BillingDetailsResponse, int64, error) {
	domainFilter := filter.toDomain()

	summaries, err := s.billingRepo.FindFiltered(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.billingRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBillingDetailsListResponses(summaries), total, nil
}

// ListOptions returns every live billing details for the quotation form select
func (s *BillingDetailsService) ListOptions(ctx context.Context) ([]BillingDetailsOption, error) {
	all, err := s.billingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]BillingDetailsOption, len(all))
	for i, b := range all {
		options[i] = BillingDetailsOption{ID: b.ID, Company: b.Company, RFC: b.RFC, Clabe: b.Clabe}
	}
	return options, nil
}

// Update replaces the billing fields and updates the owned address in place
func (s *BillingDetailsService) Update(ctx context.Context, id int64, req BillingDetailsRequest) (*BillingDetailsResponse, error) {
	billing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	if err := billing.Update(in); err != nil {
		return nil, err
	}

	if err := s.billingRepo.Save(ctx, billing); err != nil {
		return nil, notFoundAs(err, ErrBillingDetailsNotFound)
	}

	resp := ToBillingDetailsResponse(billing)
	return &resp, nil
}

// Delete soft deletes billing details. Historical quotations still print them.
func (s *BillingDetailsService) Delete(ctx context.Context, id int64) error {
	return notFoundAs(s.billingRepo.SoftDelete(ctx, id), ErrBillingDetailsNotFound)
}

func (s *BillingDetailsService) find(ctx context.Context, id int64) (*partner.BillingDetails, error) {
	billing, err := s.billingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrBillingDetailsNotFound)
	}
	return billing, nil
}
