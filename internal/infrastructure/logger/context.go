package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type (
	loggerKey struct{}
	scopeKey  struct{}
)

// scope identifies the HTTP call and the dashboard user behind a context
type scope struct {
	requestID string
	userID    int64
}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// WithContext returns a new context carrying logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID tags ctx and its logger with the request id
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	s := scopeOf(ctx)
	s.requestID = requestID
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(context.WithValue(ctx, scopeKey{}, s), enriched), enriched
}

// WithUserID tags ctx and its logger with the authenticated user
func WithUserID(ctx context.Context, logger *zap.Logger, userID int64) (context.Context, *zap.Logger) {
	s := scopeOf(ctx)
	s.userID = userID
	enriched := logger.With(zap.Int64("user_id", userID))
	return WithContext(context.WithValue(ctx, scopeKey{}, s), enriched), enriched
}

// GetRequestID returns the request id of ctx, or ""
func GetRequestID(ctx context.Context) string {
	return scopeOf(ctx).requestID
}

// GetUserID returns the authenticated user of ctx, or 0
func GetUserID(ctx context.Context) int64 {
	return scopeOf(ctx).userID
}

// GetTraceID returns the trace id of the active span, or ""
func GetTraceID(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// L returns the request logger of ctx with trace_id and span_id of the active span.
//
//	logger.L(ctx).Info("Quotation duplicated", zap.Int64("quotation_id", id))
func L(ctx context.Context) *zap.Logger {
	log := FromContext(ctx)
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		log = log.With(
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return log
}
