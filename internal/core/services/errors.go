package services

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/srgjo27/rental_booking/internal/core/domain"
)

var tracer = otel.Tracer("github.com/srgjo27/rental_booking/internal/core/services")

var passthrough = []error{
	domain.ErrInvalidWindow,
	domain.ErrSlotTaken,
	domain.ErrNotFound,
	domain.ErrInvalidTransition,
	domain.ErrStorageFailure,
	context.Canceled,
	context.DeadlineExceeded,
}

// storageError keeps domain errors as they are and tags everything else
// coming out of a store as ErrStorageFailure.
func storageError(op string, err error) error {
	for _, known := range passthrough {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageFailure, err)
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, domain.ErrSlotTaken) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
