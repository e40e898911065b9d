package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/trustregistry/internal/database"
	"github.com/allisson/trustregistry/internal/principal"
	"github.com/allisson/trustregistry/internal/recovery/domain"
	"github.com/allisson/trustregistry/internal/recovery/usecase"
	"github.com/allisson/trustregistry/internal/testutil"
)

type backend struct {
	name  string
	setup func(t *testing.T) (usecase.GuardianRepository, database.TxManager)
}

func backends() []backend {
	return []backend{
		{
			name: "memory",
			setup: func(t *testing.T) (usecase.GuardianRepository, database.TxManager) {
				txManager := database.NewMemoryTxManager()
				return NewMemoryGuardianRepository(txManager), txManager
			},
		},
		{
			name: "postgresql",
			setup: func(t *testing.T) (usecase.GuardianRepository, database.TxManager) {
				db := testutil.SetupPostgresDB(t)
				t.Cleanup(func() { testutil.TeardownDB(t, db) })
				return NewPostgreSQLGuardianRepository(db), database.NewTxManager(db)
			},
		},
		{
			name: "mysql",
			setup: func(t *testing.T) (usecase.GuardianRepository, database.TxManager) {
				db := testutil.SetupMySQLDB(t)
				t.Cleanup(func() { testutil.TeardownDB(t, db) })
				return NewMySQLGuardianRepository(db), database.NewTxManager(db)
			},
		},
	}
}

const owner principal.Principal = "did:example:owner"

func TestGuardianRepository_Sets(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo, _ := b.setup(t)

			_, err := repo.GetSet(ctx, owner)
			assert.ErrorIs(t, err, domain.ErrGuardiansNotSet)
			assert.ErrorIs(t, repo.UpdateBallot(ctx, &domain.GuardianSet{Owner: "did:example:nobody"}), domain.ErrGuardiansNotSet)

			set := &domain.GuardianSet{
				Owner:     owner,
				Guardians: []principal.Principal{"did:example:g3", "did:example:g1", "did:example:g2"},
				Threshold: 2,
				Epoch:     1,
				UpdatedAt: 10,
			}
			require.NoError(t, repo.SaveSet(ctx, set))

			got, err := repo.GetSet(ctx, owner)
			require.NoError(t, err)
			assert.Equal(t, set, got)

			_, err = repo.GetSet(ctx, owner+" ")
			assert.ErrorIs(t, err, domain.ErrGuardiansNotSet)

			set.Guardians = []principal.Principal{"did:example:g4"}
			set.Threshold = 1
			set.Epoch = 2
			require.NoError(t, repo.SaveSet(ctx, set))

			got, err = repo.GetSet(ctx, owner)
			require.NoError(t, err)
			assert.Equal(t, []principal.Principal{"did:example:g4"}, got.Guardians)
			assert.Equal(t, 1, got.Threshold)

			got.ApprovalsCount = 1
			got.Epoch = 3
			got.UpdatedAt = 11
			require.NoError(t, repo.UpdateBallot(ctx, got))

			got, err = repo.GetSet(ctx, owner)
			require.NoError(t, err)
			assert.Equal(t, 1, got.ApprovalsCount)
			assert.Equal(t, int64(3), got.Epoch)
			assert.Equal(t, int64(11), got.UpdatedAt)

			spaced := &domain.GuardianSet{
				Owner:     owner + " ",
				Guardians: []principal.Principal{"did:example:g1", "did:example:g1 "},
				Threshold: 2,
				Epoch:     1,
			}
			require.NoError(t, repo.SaveSet(ctx, spaced))
			got, err = repo.GetSet(ctx, spaced.Owner)
			require.NoError(t, err)
			assert.Equal(t, spaced.Guardians, got.Guardians)

			got, err = repo.GetSet(ctx, owner)
			require.NoError(t, err)
			assert.Equal(t, []principal.Principal{"did:example:g4"}, got.Guardians)
		})
	}
}

func TestGuardianRepository_Approvals(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo, txManager := b.setup(t)

			require.NoError(t, repo.SaveSet(ctx, &domain.GuardianSet{
				Owner:     owner,
				Guardians: []principal.Principal{"did:example:g1", "did:example:g2"},
				Threshold: 1,
				Epoch:     1,
			}))

			approval := &domain.Approval{Owner: owner, Guardian: "did:example:g1", Epoch: 1, ApprovedAt: 5}
			require.NoError(t, repo.CreateApproval(ctx, approval))
			assert.ErrorIs(t, repo.CreateApproval(ctx, approval), domain.ErrAlreadyApproved)

			approved, err := repo.HasApproval(ctx, owner, "did:example:g1")
			require.NoError(t, err)
			assert.True(t, approved)

			approved, err = repo.HasApproval(ctx, owner, "did:example:g2")
			require.NoError(t, err)
			assert.False(t, approved)

			approved, err = repo.HasApproval(ctx, owner, "did:example:g1 ")
			require.NoError(t, err)
			assert.False(t, approved)

			err = txManager.WithTx(ctx, func(ctx context.Context) error {
				require.NoError(t, repo.DeleteApprovals(ctx, owner))
				require.NoError(t, repo.CreateApproval(ctx, &domain.Approval{
					Owner: owner, Guardian: "did:example:g2", Epoch: 1, ApprovedAt: 6,
				}))
				return assert.AnError
			})
			assert.ErrorIs(t, err, assert.AnError)

			approved, err = repo.HasApproval(ctx, owner, "did:example:g1")
			require.NoError(t, err)
			assert.True(t, approved)
			approved, err = repo.HasApproval(ctx, owner, "did:example:g2")
			require.NoError(t, err)
			assert.False(t, approved)

			require.NoError(t, repo.DeleteApprovals(ctx, owner))
			approved, err = repo.HasApproval(ctx, owner, "did:example:g1")
			require.NoError(t, err)
			assert.False(t, approved)
			require.NoError(t, repo.CreateApproval(ctx, approval))
		})
	}
}
