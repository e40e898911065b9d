package usecase

import (
	"context"

	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/events/domain"
	"github.com/allisson/trustregistry/internal/events/service"
)

const verifyPageSize = 500

type eventUseCase struct {
	repo   EventRepository
	signer service.EventSigner
}

// NewEventUseCase creates the read side of the event log.
func NewEventUseCase(repo EventRepository, signer service.EventSigner) EventUseCase {
	return &eventUseCase{repo: repo, signer: signer}
}

// List returns events in the order they were recorded.
func (uc *eventUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Event, error) {
	if offset < 0 || limit <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "offset must be >= 0 and limit > 0")
	}
	return uc.repo.List(ctx, offset, limit)
}

// Verify checks the signature of every event in the log.
func (uc *eventUseCase) Verify(ctx context.Context) (*domain.VerificationReport, error) {
	report := &domain.VerificationReport{}

	for offset := 0; ; offset += verifyPageSize {
		page, err := uc.repo.List(ctx, offset, verifyPageSize)
		if err != nil {
			return nil, err
		}

		for _, event := range page {
			report.TotalChecked++
			if !event.IsSigned() {
				report.UnsignedCount++
				continue
			}
			report.SignedCount++

			err := uc.signer.Verify(event)
			switch {
			case err == nil:
				report.ValidCount++
			case apperrors.Is(err, domain.ErrSignatureInvalid):
				report.InvalidCount++
				report.InvalidEvents = append(report.InvalidEvents, event.ID)
			default:
				return nil, err
			}
		}

		if len(page) < verifyPageSize {
			return report, nil
		}
	}
}
