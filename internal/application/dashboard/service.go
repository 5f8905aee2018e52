package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/mrtoldo/backend/internal/domain/partner"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/domain/trade"
	"github.com/mrtoldo/backend/internal/infrastructure/cache"
	"github.com/mrtoldo/backend/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CachePrefix namespaces every dashboard cache key
const CachePrefix = "dashboard:"

const (
	cardsKey   = CachePrefix + "cards"
	latestKey  = CachePrefix + "latest"
	revenueKey = CachePrefix + "revenue"
)

// Config holds dashboard aggregate settings
type Config struct {
	CacheTTL      time.Duration
	LatestLimit   int
	RevenueMonths int
}

// DefaultConfig returns the dashboard defaults
func DefaultConfig() Config {
	return Config{
		CacheTTL:      5 * time.Minute,
		LatestLimit:   5,
		RevenueMonths: 12,
	}
}

// CardData are the four summary cards of the dashboard home
type CardData struct {
	NumberOfQuotations     int64           `json:"number_of_quotations"`
	NumberOfCustomers      int64           `json:"number_of_customers"`
	TotalPaidQuotations    decimal.Decimal `json:"total_paid_quotations"`
	TotalPendingQuotations decimal.Decimal `json:"total_pending_quotations"`
}

// LatestQuotation is a row of the latest quotations widget
type LatestQuotation struct {
	ID               int64           `json:"id"`
	Date             time.Time       `json:"date"`
	CustomerName     string          `json:"customer_name"`
	CustomerLastname string          `json:"customer_lastname"`
	CustomerEmail    string          `json:"customer_email"`
	CustomerCompany  string          `json:"customer_company"`
	Total            decimal.Decimal `json:"total"`
	FormattedTotal   string          `json:"formatted_total"`
	Status           string          `json:"status"`
}

// RevenuePoint is one bar of the revenue chart
type RevenuePoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Service computes dashboard aggregates, caching them for CacheTTL.
// Cache failures never fail a request; the database is queried instead.
type Service struct {
	quotations trade.QuotationRepository
	customers  partner.CustomerRepository
	cache      cache.Cache
	config     Config
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a new dashboard Service. A nil cache disables caching.
func NewService(
	quotations trade.QuotationRepository,
	customers partner.CustomerRepository,
	c cache.Cache,
	cfg Config,
	logger *zap.Logger,
) *Service {
	defaults := DefaultConfig()
	if cfg.LatestLimit <= 0 {
		cfg.LatestLimit = defaults.LatestLimit
	}
	if cfg.RevenueMonths <= 0 {
		cfg.RevenueMonths = defaults.RevenueMonths
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		quotations: quotations,
		customers:  customers,
		cache:      c,
		config:     cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// CardData returns quotation and customer counts and the paid and pending sums
func (s *Service) CardData(ctx context.Context) (*CardData, error) {
	return cached(ctx, s, cardsKey, func() (*CardData, error) {
		count, err := s.quotations.CountAll(ctx)
		if err != nil {
			return nil, err
		}
		customers, err := s.customers.Count(ctx, shared.DefaultFilter())
		if err != nil {
			return nil, err
		}
		totals, err := s.quotations.SumTotalByStatus(ctx)
		if err != nil {
			return nil, err
		}
		return &CardData{
			NumberOfQuotations:     count,
			NumberOfCustomers:      customers,
			TotalPaidQuotations:    totals.Paid,
			TotalPendingQuotations: totals.Pending,
		}, nil
	})
}

// LatestQuotations returns the most recent quotations, newest first
func (s *Service) LatestQuotations(ctx context.Context) ([]LatestQuotation, error) {
	return cached(ctx, s, latestKey, func() ([]LatestQuotation, error) {
		summaries, err := s.quotations.Latest(ctx, s.config.LatestLimit)
		if err != nil {
			return nil, err
		}
		latest := make([]LatestQuotation, len(summaries))
		for i, q := range summaries {
			latest[i] = LatestQuotation{
				ID:               q.ID,
				Date:             q.Date,
				CustomerName:     q.CustomerName,
				CustomerLastname: q.CustomerLastname,
				CustomerEmail:    q.CustomerEmail,
				CustomerCompany:  q.CustomerCompany,
				Total:            q.Total,
				FormattedTotal:   printing.FormatMoney(q.Total),
				Status:           q.Status.String(),
			}
		}
		return latest, nil
	})
}

// Revenue returns the monthly quotation totals of the last RevenueMonths months, oldest first
func (s *Service) Revenue(ctx context.Context) ([]RevenuePoint, error) {
	return cached(ctx, s, revenueKey, func() ([]RevenuePoint, error) {
		months, err := s.quotations.MonthlyRevenue(ctx, s.revenueSince())
		if err != nil {
			return nil, err
		}
		points := make([]RevenuePoint, len(months))
		for i, m := range months {
			points[i] = RevenuePoint{Month: m.Month.Format("2006-01"), Revenue: m.Total}
		}
		return points, nil
	})
}

// Invalidate drops every cached aggregate. Called after quotation and customer writes.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.DeletePrefix(ctx, CachePrefix); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
		return err
	}
	return nil
}

// revenueSince returns the first day of the oldest month shown on the chart
func (s *Service) revenueSince() time.Time {
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -(s.config.RevenueMonths - 1), 0)
}

func cached[T any](ctx context.Context, s *Service, key string, load func() (T, error)) (T, error) {
	var value T
	if s.cache != nil && s.config.CacheTTL > 0 {
		err := s.cache.Get(ctx, key, &value)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if s.cache != nil && s.config.CacheTTL > 0 {
		if err := s.cache.Set(ctx, key, value, s.config.CacheTTL); err != nil {
			s.logger.Warn("Dashboard cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}
