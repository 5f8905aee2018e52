package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/mrtoldo/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func newTestMeter() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	return reader, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
}

func TestQuotationMetrics_Record(t *testing.T) {
	ctx := context.Background()
	reader, provider := newTestMeter()
	m, err := NewQuotationMetrics(provider.Meter("test"))
	require.NoError(t, err)

	m.RecordQuotation(ctx, SourceCreate, decimal.RequireFromString("1160.00"))
	m.RecordQuotation(ctx, SourceDuplicate, decimal.RequireFromString("580.00"))
	m.RecordQuotationDeleted(ctx)
	m.RecordPDFRender(ctx, 800*time.Millisecond, nil)
	m.RecordPDFRender(ctx, 2*time.Second, errors.New("chrome crashed"))

	got := collect(t, reader)

	created := got["quotation_created_total"].Data.(metricdata.Sum[int64])
	assert.Len(t, created.DataPoints, 2)

	amount := got["quotation_amount_total"].Data.(metricdata.Sum[float64])
	var sum float64
	for _, dp := range amount.DataPoints {
		sum += dp.Value
	}
	assert.InDelta(t, 1740.0, sum, 0.001)

	deleted := got["quotation_deleted_total"].Data.(metricdata.Sum[int64])
	require.Len(t, deleted.DataPoints, 1)
	assert.Equal(t, int64(1), deleted.DataPoints[0].Value)

	renders := got["quotation_pdf_render_duration_seconds"].Data.(metricdata.Histogram[float64])
	assert.Len(t, renders.DataPoints, 2)
}

func TestQuotationMetrics_NilIsNoop(t *testing.T) {
	var m *QuotationMetrics
	assert.NotPanics(t, func() {
		m.RecordQuotation(context.Background(), SourceCreate, decimal.NewFromInt(1))
		m.RecordQuotationDeleted(context.Background())
		m.RecordPDFRender(context.Background(), time.Second, nil)
	})
}

func TestNewQuotationMetrics_NilMeter(t *testing.T) {
	_, err := NewQuotationMetrics(nil)
	assert.Error(t, err)
}

func TestRegisterPoolMetrics(t *testing.T) {
	reader, provider := newTestMeter()
	reg, err := RegisterPoolMetrics(provider.Meter("test"), func() (sql.DBStats, error) {
		return sql.DBStats{MaxOpenConnections: 25, InUse: 3, Idle: 2, WaitCount: 7}, nil
	})
	require.NoError(t, err)
	defer reg.Unregister()

	got := collect(t, reader)

	conns := got["db_pool_connections"].Data.(metricdata.Gauge[int64])
	byState := make(map[string]int64)
	for _, dp := range conns.DataPoints {
		v, _ := dp.Attributes.Value("state")
		byState[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"in_use": 3, "idle": 2}, byState)

	maxOpen := got["db_pool_connections_max"].Data.(metricdata.Gauge[int64])
	require.Len(t, maxOpen.DataPoints, 1)
	assert.Equal(t, int64(25), maxOpen.DataPoints[0].Value)
}

func TestMetricsConfigFrom(t *testing.T) {
	cfg := MetricsConfigFrom(config.TelemetryConfig{Enabled: false, MetricsEnabled: true})
	assert.False(t, cfg.Enabled)

	cfg = MetricsConfigFrom(config.TelemetryConfig{Enabled: true, MetricsEnabled: true, MetricsInterval: 15 * time.Second})
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 15*time.Second, cfg.ExportInterval)
}

func TestMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{}, nil)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("quotes"))
	assert.NoError(t, mp.Shutdown(context.Background()))

	m, err := NewQuotationMetrics(mp.Meter("quotes"))
	require.NoError(t, err)
	m.RecordQuotationDeleted(context.Background())
}
