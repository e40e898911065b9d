package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/hash"
	"github.com/allisson/trustregistry/internal/revocation/domain"
	"github.com/allisson/trustregistry/internal/revocation/usecase"
	"github.com/allisson/trustregistry/internal/testutil"
)

type backend struct {
	name  string
	setup func(t *testing.T) (usecase.AnchorRepository, database.TxManager)
}

func backends() []backend {
	return []backend{
		{
			name: "memory",
			setup: func(t *testing.T) (usecase.AnchorRepository, database.TxManager) {
				txManager := database.NewMemoryTxManager()
				return NewMemoryAnchorRepository(txManager), txManager
			},
		},
		{
			name: "postgresql",
			setup: func(t *testing.T) (usecase.AnchorRepository, database.TxManager) {
				db := testutil.SetupPostgresDB(t)
				t.Cleanup(func() { testutil.TeardownDB(t, db) })
				return NewPostgreSQLAnchorRepository(db), database.NewTxManager(db)
			},
		},
		{
			name: "mysql",
			setup: func(t *testing.T) (usecase.AnchorRepository, database.TxManager) {
				db := testutil.SetupMySQLDB(t)
				t.Cleanup(func() { testutil.TeardownDB(t, db) })
				return NewMySQLAnchorRepository(db), database.NewTxManager(db)
			},
		},
	}
}

func TestAnchorRepository(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo, txManager := b.setup(t)
			h := hash.Keccak256([]byte("credential"))

			_, err := repo.Get(ctx, h)
			assert.ErrorIs(t, err, domain.ErrNotAnchored)
			assert.ErrorIs(t, repo.MarkRevoked(ctx, h), domain.ErrNotAnchored)

			anchor := &domain.Anchor{Hash: h, Issuer: "did:example:university", ContentRef: "ipfs://vc", AnchoredAt: 7}
			require.NoError(t, repo.Create(ctx, anchor))
			assert.ErrorIs(t, repo.Create(ctx, anchor), domain.ErrAlreadyAnchored)

			got, err := repo.Get(ctx, h)
			require.NoError(t, err)
			assert.Equal(t, anchor, got)

			err = txManager.WithTx(ctx, func(ctx context.Context) error {
				locked, err := repo.Get(ctx, h)
				require.NoError(t, err)
				assert.False(t, locked.Revoked)
				return repo.MarkRevoked(ctx, h)
			})
			require.NoError(t, err)

			got, err = repo.Get(ctx, h)
			require.NoError(t, err)
			assert.True(t, got.Revoked)
		})
	}
}

func TestAnchorRepository_Rollback(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo, txManager := b.setup(t)
			h := hash.Keccak256([]byte("rolled-back"))

			err := txManager.WithTx(ctx, func(ctx context.Context) error {
				require.NoError(t, repo.Create(ctx, &domain.Anchor{Hash: h, Issuer: "did:example:university"}))
				return assert.AnError
			})
			assert.ErrorIs(t, err, assert.AnError)

			_, err = repo.Get(ctx, h)
			assert.ErrorIs(t, err, domain.ErrNotAnchored)
		})
	}
}
