package partner

import (
	"context"
	"errors"

	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrCustomerNotFound is returned when the customer does not exist
var ErrCustomerNotFound = shared.NotFound("Customer not found")

// CacheInvalidator drops cached dashboard aggregates that show customers
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	invalidator  CacheInvalidator
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService. invalidator may be nil.
func NewCustomerService(customerRepo partner.CustomerRepository, invalidator CacheInvalidator, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{customerRepo: customerRepo, invalidator: invalidator, logger: logger}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CustomerRequest) (*CustomerResponse, error) {
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	customer, err := partner.NewCustomer(in)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*CustomerResponse, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List retrieves a page of customers with their quotation totals
func (s *CustomerService) List(ctx context.Context, filter ListFilter) ([]CustomerListResponse, int64, error) {
	domainFilter := filter.toDomain()

	summaries, err := s.customerRepo.FindFiltered(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerListResponses(summaries), total, nil
}

// ListOptions returns every customer for the quotation form select
func (s *CustomerService) ListOptions(ctx context.Context) ([]CustomerOption, error) {
	options, err := s.customerRepo.FindOptions(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CustomerOption, len(options))
	for i, o := range options {
		out[i] = CustomerOption(o)
	}
	return out, nil
}

// Update replaces the customer fields
func (s *CustomerService) Update(ctx context.Context, id int64, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	if err := customer.Update(in); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, notFoundAs(err, ErrCustomerNotFound)
	}
	s.invalidate(ctx)

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer that no quotation references
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			s.logger.Info("Refused to delete customer with quotations", zap.Int64("customer_id", id))
		}
		return notFoundAs(err, ErrCustomerNotFound)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CustomerService) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil {
		s.logger.Warn("Dashboard cache not invalidated", zap.Error(err))
	}
}

func (s *CustomerService) find(ctx context.Context, id int64) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrCustomerNotFound)
	}
	return customer, nil
}

// notFoundAs replaces a generic not found error with a resource specific one
func notFoundAs(err error, target *shared.DomainError) error {
	if errors.Is(err, shared.ErrNotFound) {
		return target
	}
	return err
}
