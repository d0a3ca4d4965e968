package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

const (
	DefaultMaxAttempts = 5
	maxIDLength        = 128
)

var tracer = otel.Tracer("storefront/usecase")

// withOptimisticRetry reruns a read-modify-write while the store reports a
// version conflict, up to maxAttempts times. Any other outcome is returned
// as is.
func withOptimisticRetry(ctx context.Context, maxAttempts int, op func() error) error {
	span := trace.SpanFromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = op()
		span.SetAttributes(attribute.Int("store.attempts", attempt))
		if !errors.Is(err, errors.CodeConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.StoreUnavailable("Request cancelled during retry", ctxErr)
		}
		logger.Debug("version conflict, retrying (attempt %d/%d)", attempt, maxAttempts)
	}

	logger.Warn("giving up after %d conflicting attempts", maxAttempts)
	return err
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// requireID trims and validates a document identifier.
func requireID(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return "", errors.InvalidPayload(field+" is required", nil)
	case len(value) > maxIDLength:
		return "", errors.InvalidPayload(field+" is too long", nil)
	case strings.Contains(value, "/"):
		return "", errors.InvalidPayload(field+" is malformed", nil)
	}
	return value, nil
}

// storeError passes AppErrors through and wraps anything else as a store failure.
func storeError(message string, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return errors.StoreUnavailable(message, err)
}
