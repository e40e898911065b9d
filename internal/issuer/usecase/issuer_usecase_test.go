package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/trustregistry/internal/clock"
	"github.com/allisson/trustregistry/internal/database"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	eventsRepository "github.com/allisson/trustregistry/internal/events/repository"
	"github.com/allisson/trustregistry/internal/events/service"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	"github.com/allisson/trustregistry/internal/issuer/domain"
	"github.com/allisson/trustregistry/internal/issuer/repository"
	ownershipDomain "github.com/allisson/trustregistry/internal/ownership/domain"
	ownershipRepository "github.com/allisson/trustregistry/internal/ownership/repository"
	ownershipUseCase "github.com/allisson/trustregistry/internal/ownership/usecase"
	"github.com/allisson/trustregistry/internal/principal"
)

const owner principal.Principal = "did:example:registry-admin"

func setupUseCase(t *testing.T) (IssuerUseCase, *eventsRepository.MemoryEventRepository) {
	t.Helper()

	txManager := database.NewMemoryTxManager()
	events := eventsRepository.NewMemoryEventRepository(txManager)
	recorder := eventsUseCase.NewRecorder(events, service.NewNoopSigner())
	clk := clock.NewManual(1_700_000_000)

	ownership := ownershipUseCase.NewOwnershipUseCase(
		txManager, ownershipRepository.NewMemoryOwnershipRepository(txManager), recorder, clk,
	)
	_, err := ownership.Bootstrap(context.Background(), ownershipDomain.RegistryIssuer, owner)
	require.NoError(t, err)

	uc := NewIssuerUseCase(txManager, repository.NewMemoryIssuerRepository(txManager), ownership, recorder, clk)
	return uc, events
}

func countEvents(t *testing.T, events *eventsRepository.MemoryEventRepository, eventType string) int {
	t.Helper()
	all, err := events.List(context.Background(), 0, 100)
	require.NoError(t, err)
	count := 0
	for _, event := range all {
		if event.EventType == eventType {
			count++
		}
	}
	return count
}

func TestIssuerUseCase_AddIssuer(t *testing.T) {
	ctx := principal.WithSender(context.Background(), owner)

	t.Run("owner adds and overwrites metadata", func(t *testing.T) {
		uc, events := setupUseCase(t)

		entry, err := uc.AddIssuer(ctx, "did:example:university", "ipfs://meta-1")
		require.NoError(t, err)
		assert.True(t, entry.Trusted)
		assert.Equal(t, int64(1_700_000_000), entry.UpdatedAt)

		_, err = uc.AddIssuer(ctx, "did:example:university", "ipfs://meta-2")
		require.NoError(t, err)

		trusted, err := uc.IsTrusted(ctx, "did:example:university")
		require.NoError(t, err)
		assert.True(t, trusted)

		ref, err := uc.GetMetadataRef(ctx, "did:example:university")
		require.NoError(t, err)
		assert.Equal(t, "ipfs://meta-2", ref)

		assert.Equal(t, 2, countEvents(t, events, domain.EventIssuerAdded))
	})

	t.Run("non owner is rejected", func(t *testing.T) {
		uc, events := setupUseCase(t)

		_, err := uc.AddIssuer(principal.WithSender(context.Background(), "did:example:mallory"),
			"did:example:mallory", "")
		assert.ErrorIs(t, err, ownershipDomain.ErrNotOwner)

		trusted, err := uc.IsTrusted(ctx, "did:example:mallory")
		require.NoError(t, err)
		assert.False(t, trusted)
		assert.Zero(t, countEvents(t, events, domain.EventIssuerAdded))
	})

	t.Run("unauthenticated", func(t *testing.T) {
		uc, _ := setupUseCase(t)

		_, err := uc.AddIssuer(context.Background(), "did:example:university", "")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestIssuerUseCase_RemoveIssuer(t *testing.T) {
	ctx := principal.WithSender(context.Background(), owner)

	t.Run("clears trust and metadata", func(t *testing.T) {
		uc, events := setupUseCase(t)

		_, err := uc.AddIssuer(ctx, "did:example:university", "ipfs://meta")
		require.NoError(t, err)
		require.NoError(t, uc.RemoveIssuer(ctx, "did:example:university"))

		entry, err := uc.Get(ctx, "did:example:university")
		require.NoError(t, err)
		assert.False(t, entry.Trusted)
		assert.Empty(t, entry.MetadataRef)
		assert.Equal(t, 1, countEvents(t, events, domain.EventIssuerRemoved))
	})

	t.Run("removing an unknown issuer still succeeds", func(t *testing.T) {
		uc, events := setupUseCase(t)

		require.NoError(t, uc.RemoveIssuer(ctx, "did:example:never-added"))
		assert.Equal(t, 1, countEvents(t, events, domain.EventIssuerRemoved))
	})

	t.Run("non owner is rejected", func(t *testing.T) {
		uc, _ := setupUseCase(t)

		_, err := uc.AddIssuer(ctx, "did:example:university", "ipfs://meta")
		require.NoError(t, err)

		err = uc.RemoveIssuer(principal.WithSender(context.Background(), "did:example:university"),
			"did:example:university")
		assert.ErrorIs(t, err, ownershipDomain.ErrNotOwner)

		trusted, err := uc.IsTrusted(ctx, "did:example:university")
		require.NoError(t, err)
		assert.True(t, trusted)
	})
}

func TestIssuerUseCase_Reads_UnknownIssuer(t *testing.T) {
	uc, _ := setupUseCase(t)
	ctx := context.Background()

	trusted, err := uc.IsTrusted(ctx, "did:example:unknown")
	require.NoError(t, err)
	assert.False(t, trusted)

	ref, err := uc.GetMetadataRef(ctx, "did:example:unknown")
	require.NoError(t, err)
	assert.Empty(t, ref)

	entry, err := uc.Get(ctx, "did:example:unknown")
	require.NoError(t, err)
	assert.Equal(t, &domain.Issuer{Issuer: "did:example:unknown"}, entry)
}

func TestIssuerUseCase_OwnershipTransfer(t *testing.T) {
	txManager := database.NewMemoryTxManager()
	recorder := eventsUseCase.NewRecorder(eventsRepository.NewMemoryEventRepository(txManager), service.NewNoopSigner())
	clk := clock.NewManual(1)
	ownership := ownershipUseCase.NewOwnershipUseCase(
		txManager, ownershipRepository.NewMemoryOwnershipRepository(txManager), recorder, clk,
	)
	ctx := context.Background()
	_, err := ownership.Bootstrap(ctx, ownershipDomain.RegistryIssuer, owner)
	require.NoError(t, err)

	uc := NewIssuerUseCase(txManager, repository.NewMemoryIssuerRepository(txManager), ownership, recorder, clk)

	_, err = ownership.TransferOwnership(principal.WithSender(ctx, owner), ownershipDomain.RegistryIssuer, "did:example:ops")
	require.NoError(t, err)

	_, err = uc.AddIssuer(principal.WithSender(ctx, owner), "did:example:university", "")
	assert.ErrorIs(t, err, ownershipDomain.ErrNotOwner)

	_, err = uc.AddIssuer(principal.WithSender(ctx, "did:example:ops"), "did:example:university", "")
	assert.NoError(t, err)
}
