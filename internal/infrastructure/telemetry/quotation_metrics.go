package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Quotation sources recorded on quotation_created_total
const (
	SourceCreate    = "create"
	SourceDuplicate = "duplicate"
)

var (
	attrSource = attribute.Key("source")
	attrResult = attribute.Key("result")
)

// PDFDurationBuckets are render latency boundaries in seconds. Chrome starts are slow.
var PDFDurationBuckets = []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// QuotationMetrics records quotation and PDF activity. A nil *QuotationMetrics is a no-op.
type QuotationMetrics struct {
	created     metric.Int64Counter
	amount      metric.Float64Counter
	deleted     metric.Int64Counter
	pdfRenders  metric.Int64Counter
	pdfDuration metric.Float64Histogram
}

// NewQuotationMetrics creates the instruments on meter
func NewQuotationMetrics(meter metric.Meter) (*QuotationMetrics, error) {
	if meter == nil {
		return nil, errors.New("telemetry: meter is nil")
	}
	var (
		m   QuotationMetrics
		err error
	)
	if m.created, err = meter.Int64Counter("quotation_created_total",
		metric.WithDescription("Quotations written, by source"),
		metric.WithUnit("{quotation}")); err != nil {
		return nil, fmt.Errorf("quotation_created_total: %w", err)
	}
	if m.amount, err = meter.Float64Counter("quotation_amount_total",
		metric.WithDescription("Sum of quotation totals including IVA"),
		metric.WithUnit("MXN")); err != nil {
		return nil, fmt.Errorf("quotation_amount_total: %w", err)
	}
	if m.deleted, err = meter.Int64Counter("quotation_deleted_total",
		metric.WithDescription("Quotations deleted"),
		metric.WithUnit("{quotation}")); err != nil {
		return nil, fmt.Errorf("quotation_deleted_total: %w", err)
	}
	if m.pdfRenders, err = meter.Int64Counter("quotation_pdf_render_total",
		metric.WithDescription("Quotation PDF renders, by result"),
		metric.WithUnit("{render}")); err != nil {
		return nil, fmt.Errorf("quotation_pdf_render_total: %w", err)
	}
	if m.pdfDuration, err = meter.Float64Histogram("quotation_pdf_render_duration_seconds",
		metric.WithDescription("Quotation PDF render latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(PDFDurationBuckets...)); err != nil {
		return nil, fmt.Errorf("quotation_pdf_render_duration_seconds: %w", err)
	}
	return &m, nil
}

// RecordQuotation counts a written quotation and adds its total
func (m *QuotationMetrics) RecordQuotation(ctx context.Context, source string, total decimal.Decimal) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attrSource.String(source))
	m.created.Add(ctx, 1, attrs)
	m.amount.Add(ctx, total.InexactFloat64(), attrs)
}

// RecordQuotationDeleted counts a deleted quotation
func (m *QuotationMetrics) RecordQuotationDeleted(ctx context.Context) {
	if m == nil {
		return
	}
	m.deleted.Add(ctx, 1)
}

// RecordPDFRender records one render attempt
func (m *QuotationMetrics) RecordPDFRender(ctx context.Context, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	attrs := metric.WithAttributes(attrResult.String(result))
	m.pdfRenders.Add(ctx, 1, attrs)
	m.pdfDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// PoolStatsFunc reports the database pool state
type PoolStatsFunc func() (sql.DBStats, error)

// RegisterPoolMetrics exposes pool gauges that are read at each collection
func RegisterPoolMetrics(meter metric.Meter, stats PoolStatsFunc) (metric.Registration, error) {
	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Connections waited for"),
		metric.WithUnit("{wait}"))
	if err != nil {
		return nil, err
	}

	state := attribute.Key("state")
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s, err := stats()
		if err != nil {
			return err
		}
		o.ObserveInt64(connections, int64(s.InUse), metric.WithAttributes(state.String("in_use")))
		o.ObserveInt64(connections, int64(s.Idle), metric.WithAttributes(state.String("idle")))
		o.ObserveInt64(maxOpen, int64(s.MaxOpenConnections))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, connections, maxOpen, waits)
}
