package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mrtoldo/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

type status string

func (s status) String() string { return "status:" + string(s) }

func TestStartServiceSpan(t *testing.T) {
	recorder := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "quotation", "create",
		telemetry.SpanAttrQuotationID, int64(42),
		telemetry.SpanAttrItemCount, 3,
		"status", status("paid"),
		"odd-key-without-value",
	)
	telemetry.SetAttributes(span, "iva", true, 7, "ignored non-string key")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "quotation.create", ended[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(42), attrs["quotation_id"].AsInt64())
	assert.Equal(t, int64(3), attrs["items_count"].AsInt64())
	assert.Equal(t, "status:paid", attrs["status"].AsString())
	assert.True(t, attrs["iva"].AsBool())
	assert.Len(t, attrs, 4)
}

func TestRecordError(t *testing.T) {
	recorder := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "pdf", "generate")
	telemetry.RecordError(span, nil)
	telemetry.RecordError(span, errors.New("chrome crashed"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "chrome crashed", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}
