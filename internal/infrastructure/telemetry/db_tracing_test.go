package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/mrtoldo/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTracedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func recordSpan(t *testing.T, fn func(ctx context.Context)) sdktrace.ReadOnlySpan {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	fn(ctx)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	return ended[0]
}

func attrMap(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestDBTracingConfigFrom(t *testing.T) {
	t.Run("requires telemetry and db tracing", func(t *testing.T) {
		cfg := DBTracingConfigFrom(config.TelemetryConfig{Enabled: false, DBTraceEnabled: true}, "quotations")
		assert.False(t, cfg.Enabled)

		cfg = DBTracingConfigFrom(config.TelemetryConfig{Enabled: true, DBTraceEnabled: true}, "quotations")
		assert.True(t, cfg.Enabled)
		assert.Equal(t, "quotations", cfg.DBName)
	})

	t.Run("defaults slow threshold", func(t *testing.T) {
		cfg := DBTracingConfigFrom(config.TelemetryConfig{}, "db")
		assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	})
}

func TestDBTracingPlugin_Register(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		db := setupTracedDB(t)
		require.NoError(t, NewDBTracingPlugin(DBTracingConfig{}, nil).Register(db))
		assert.Nil(t, db.Callback().Query().Get("quotes_trace:after_query"))
	})

	t.Run("enabled installs callbacks", func(t *testing.T) {
		db := setupTracedDB(t)
		p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, DBName: "test", SlowQueryThresh: time.Second}, nil)
		require.NoError(t, p.Register(db))

		assert.NotNil(t, db.Callback().Query().Get("quotes_trace:after_query"))
		assert.NotNil(t, db.Callback().Create().Get("quotes_trace:before_create"))
		assert.NoError(t, db.Create(&tracedRow{Name: "x"}).Error)
	})
}

func TestDBTracingPlugin_AnnotatesSpan(t *testing.T) {
	db := setupTracedDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Hour}, nil)
	require.NoError(t, p.registerCallbacks(db))

	span := recordSpan(t, func(ctx context.Context) {
		require.NoError(t, db.WithContext(ctx).Create(&tracedRow{Name: "a"}).Error)
	})

	attrs := attrMap(span)
	assert.Equal(t, int64(1), attrs["db.rows_affected"].AsInt64())
	assert.Equal(t, "traced_rows", attrs["db.sql.table"].AsString())
	_, slow := attrs["db.slow_query"]
	assert.False(t, slow)
	assert.Equal(t, codes.Unset, span.Status().Code)
}

func TestDBTracingPlugin_MarksSlowQueries(t *testing.T) {
	db := setupTracedDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Nanosecond}, nil)
	require.NoError(t, p.registerCallbacks(db))

	span := recordSpan(t, func(ctx context.Context) {
		var rows []tracedRow
		require.NoError(t, db.WithContext(ctx).Find(&rows).Error)
	})

	assert.True(t, attrMap(span)["db.slow_query"].AsBool())
	require.NotEmpty(t, span.Events())
	assert.Equal(t, "slow_query_warning", span.Events()[len(span.Events())-1].Name)
}

func TestDBTracingPlugin_RecordsErrors(t *testing.T) {
	db := setupTracedDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Hour}, nil)
	require.NoError(t, p.registerCallbacks(db))

	t.Run("sql error marks the span", func(t *testing.T) {
		span := recordSpan(t, func(ctx context.Context) {
			err := db.WithContext(ctx).Table("missing_table").Create(map[string]any{"name": "x"}).Error
			require.Error(t, err)
		})
		assert.Equal(t, codes.Error, span.Status().Code)
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		span := recordSpan(t, func(ctx context.Context) {
			var row tracedRow
			err := db.WithContext(ctx).First(&row, 999).Error
			require.ErrorIs(t, err, gorm.ErrRecordNotFound)
		})
		assert.Equal(t, codes.Unset, span.Status().Code)
	})
}
