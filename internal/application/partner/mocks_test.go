package partner

import (
	"context"

	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindOptions(ctx context.Context) ([]partner.CustomerOption, error) {
	args := m.Called(ctx)
	return args.Get(0).([]partner.CustomerOption), args.Error(1)
}

func (m *MockCustomerRepository) FindFiltered(ctx context.Context, filter shared.Filter) ([]partner.CustomerSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.CustomerSummary), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockBillingDetailsRepository is a mock implementation of BillingDetailsRepository
type MockBillingDetailsRepository struct {
	mock.Mock
}

func (m *MockBillingDetailsRepository) FindByID(ctx context.Context, id int64) (*partner.BillingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.BillingDetails), args.Error(1)
}

func (m *MockBillingDetailsRepository) FindAll(ctx context.Context) ([]partner.BillingDetails, error) {
	args := m.Called(ctx)
	return args.Get(0).([]partner.BillingDetails), args.Error(1)
}

func (m *MockBillingDetailsRepository) FindFiltered(ctx context.Context, filter shared.Filter) ([]partner.BillingDetailsSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.BillingDetailsSummary), args.Error(1)
}

func (m *MockBillingDetailsRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillingDetailsRepository) Save(ctx context.Context, billing *partner.BillingDetails) error {
	args := m.Called(ctx, billing)
	return args.Error(0)
}

func (m *MockBillingDetailsRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBillingDetailsRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockCacheInvalidator is a mock implementation of CacheInvalidator
type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
