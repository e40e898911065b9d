package usecase

import (
	"context"
	"time"

	"github.com/allisson/trustregistry/internal/directory/domain"
	"github.com/allisson/trustregistry/internal/metrics"
)

// directoryUseCaseWithMetrics decorates DirectoryUseCase with metrics instrumentation.
type directoryUseCaseWithMetrics struct {
	next    DirectoryUseCase
	metrics metrics.BusinessMetrics
}

// NewDirectoryUseCaseWithMetrics wraps a DirectoryUseCase with metrics recording.
func NewDirectoryUseCaseWithMetrics(useCase DirectoryUseCase, m metrics.BusinessMetrics) DirectoryUseCase {
	return &directoryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *directoryUseCaseWithMetrics) SetAddresses(
	ctx context.Context,
	addresses domain.Addresses,
) (*domain.Addresses, error) {
	start := time.Now()
	result, err := d.next.SetAddresses(ctx, addresses)
	d.record(ctx, "directory_set_addresses", start, err)
	return result, err
}

func (d *directoryUseCaseWithMetrics) GetAddresses(ctx context.Context) (*domain.Addresses, error) {
	start := time.Now()
	result, err := d.next.GetAddresses(ctx)
	d.record(ctx, "directory_get_addresses", start, err)
	return result, err
}

func (d *directoryUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.OperationStatus(err)
	d.metrics.RecordOperation(ctx, "directory", operation, status)
	d.metrics.RecordDuration(ctx, "directory", operation, time.Since(start), status)
}
