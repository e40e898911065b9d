package app

import (
	"database/sql"
	"fmt"

	accessHTTP "github.com/allisson/trustregistry/internal/access/http"
	accessRepository "github.com/allisson/trustregistry/internal/access/repository"
	accessUseCase "github.com/allisson/trustregistry/internal/access/usecase"
	"github.com/allisson/trustregistry/internal/database"
	directoryHTTP "github.com/allisson/trustregistry/internal/directory/http"
	directoryRepository "github.com/allisson/trustregistry/internal/directory/repository"
	directoryUseCase "github.com/allisson/trustregistry/internal/directory/usecase"
	eventsUseCase "github.com/allisson/trustregistry/internal/events/usecase"
	identifierHTTP "github.com/allisson/trustregistry/internal/identifier/http"
	identifierRepository "github.com/allisson/trustregistry/internal/identifier/repository"
	identifierUseCase "github.com/allisson/trustregistry/internal/identifier/usecase"
	issuerHTTP "github.com/allisson/trustregistry/internal/issuer/http"
	issuerRepository "github.com/allisson/trustregistry/internal/issuer/repository"
	issuerUseCase "github.com/allisson/trustregistry/internal/issuer/usecase"
	"github.com/allisson/trustregistry/internal/metrics"
	ownershipHTTP "github.com/allisson/trustregistry/internal/ownership/http"
	ownershipRepository "github.com/allisson/trustregistry/internal/ownership/repository"
	ownershipUseCase "github.com/allisson/trustregistry/internal/ownership/usecase"
	"github.com/allisson/trustregistry/internal/principal"
	recoveryHTTP "github.com/allisson/trustregistry/internal/recovery/http"
	recoveryRepository "github.com/allisson/trustregistry/internal/recovery/repository"
	recoveryUseCase "github.com/allisson/trustregistry/internal/recovery/usecase"
	revocationHTTP "github.com/allisson/trustregistry/internal/revocation/http"
	revocationRepository "github.com/allisson/trustregistry/internal/revocation/repository"
	revocationUseCase "github.com/allisson/trustregistry/internal/revocation/usecase"
)

type registryComponents struct {
	ownershipUseCase lazy[ownershipUseCase.OwnershipUseCase]
	ownershipHandler lazy[*ownershipHTTP.OwnershipHandler]

	identifierUseCase lazy[identifierUseCase.IdentifierUseCase]
	identifierHandler lazy[*identifierHTTP.IdentifierHandler]

	accessUseCase lazy[accessUseCase.AccessUseCase]
	accessHandler lazy[*accessHTTP.AccessHandler]

	issuerUseCase lazy[issuerUseCase.IssuerUseCase]
	issuerHandler lazy[*issuerHTTP.IssuerHandler]

	revocationUseCase lazy[revocationUseCase.RevocationUseCase]
	anchorHandler     lazy[*revocationHTTP.AnchorHandler]

	recoveryUseCase lazy[recoveryUseCase.RecoveryUseCase]
	recoveryHandler lazy[*recoveryHTTP.RecoveryHandler]

	directoryUseCase lazy[directoryUseCase.DirectoryUseCase]
	directoryHandler lazy[*directoryHTTP.DirectoryHandler]
}

// useCaseDeps returns the collaborators shared by every registry use case.
func (c *Container) useCaseDeps() (database.TxManager, eventsUseCase.Recorder, metrics.BusinessMetrics, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get tx manager: %w", err)
	}
	recorder, err := c.EventRecorder()
	if err != nil {
		return nil, nil, nil, err
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, nil, nil, err
	}
	return txManager, recorder, businessMetrics, nil
}

// OwnershipUseCase returns the use case guarding the owner-gated registries.
func (c *Container) OwnershipUseCase() (ownershipUseCase.OwnershipUseCase, error) {
	return c.ownershipUseCase.get(func() (ownershipUseCase.OwnershipUseCase, error) {
		repo, err := selectRepository[ownershipUseCase.OwnershipRepository](c,
			func(store *database.MemoryTxManager) ownershipUseCase.OwnershipRepository {
				return ownershipRepository.NewMemoryOwnershipRepository(store)
			},
			func(db *sql.DB) ownershipUseCase.OwnershipRepository {
				return ownershipRepository.NewPostgreSQLOwnershipRepository(db)
			},
			func(db *sql.DB) ownershipUseCase.OwnershipRepository {
				return ownershipRepository.NewMySQLOwnershipRepository(db)
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get ownership repository: %w", err)
		}
		txManager, recorder, businessMetrics, err := c.useCaseDeps()
		if err != nil {
			return nil, err
		}

		useCase := ownershipUseCase.NewOwnershipUseCase(txManager, repo, recorder, c.Clock())
		return ownershipUseCase.NewOwnershipUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// OwnershipHandler returns the HTTP handler of registry ownership.
func (c *Container) OwnershipHandler() (*ownershipHTTP.OwnershipHandler, error) {
	return c.ownershipHandler.get(func() (*ownershipHTTP.OwnershipHandler, error) {
		useCase, err := c.OwnershipUseCase()
		if err != nil {
			return nil, err
		}
		return ownershipHTTP.NewOwnershipHandler(useCase, c.Logger()), nil
	})
}

// IdentifierUseCase returns the identifier registry.
func (c *Container) IdentifierUseCase() (identifierUseCase.IdentifierUseCase, error) {
	return c.identifierUseCase.get(func() (identifierUseCase.IdentifierUseCase, error) {
		repo, err := selectRepository[identifierUseCase.IdentifierRepository](c,
			func(store *database.MemoryTxManager) identifierUseCase.IdentifierRepository {
				return identifierRepository.NewMemoryIdentifierRepository(store)
			},
			func(db *sql.DB) identifierUseCase.IdentifierRepository {
				return identifierRepository.NewPostgreSQLIdentifierRepository(db)
			},
			func(db *sql.DB) identifierUseCase.IdentifierRepository {
				return identifierRepository.NewMySQLIdentifierRepository(db)
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get identifier repository: %w", err)
		}
		ownership, err := c.OwnershipUseCase()
		if err != nil {
			return nil, err
		}
		txManager, recorder, businessMetrics, err := c.useCaseDeps()
		if err != nil {
			return nil, err
		}

		useCase := identifierUseCase.NewIdentifierUseCase(txManager, repo, ownership, recorder, c.Clock())
		return identifierUseCase.NewIdentifierUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// IdentifierHandler returns the HTTP handler of the identifier registry.
func (c *Container) IdentifierHandler() (*identifierHTTP.IdentifierHandler, error) {
	return c.identifierHandler.get(func() (*identifierHTTP.IdentifierHandler, error) {
		useCase, err := c.IdentifierUseCase()
		if err != nil {
			return nil, err
		}
		return identifierHTTP.NewIdentifierHandler(useCase, c.Logger()), nil
	})
}

// AccessUseCase returns the access control registry.
func (c *Container) AccessUseCase() (accessUseCase.AccessUseCase, error) {
	return c.accessUseCase.get(func() (accessUseCase.AccessUseCase, error) {
		repo, err := selectRepository[accessUseCase.PermissionRepository](c,
			func(store *database.MemoryTxManager) accessUseCase.PermissionRepository {
				return accessRepository.NewMemoryPermissionRepository(store)
			},
			func(db *sql.DB) accessUseCase.PermissionRepository {
				return accessRepository.NewPostgreSQLPermissionRepository(db)
			},
			func(db *sql.DB) accessUseCase.PermissionRepository {
				return accessRepository.NewMySQLPermissionRepository(db)
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get permission repository: %w", err)
		}
		txManager, recorder, businessMetrics, err := c.useCaseDeps()
		if err != nil {
			return nil, err
		}

		useCase := accessUseCase.NewAccessUseCase(txManager, repo, recorder, c.Clock())
		return accessUseCase.NewAccessUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// AccessHandler returns the HTTP handler of the access control registry.
func (c *Container) AccessHandler() (*accessHTTP.AccessHandler, error) {
	return c.accessHandler.get(func() (*accessHTTP.AccessHandler, error) {
		useCase, err := c.AccessUseCase()
		if err != nil {
			return nil, err
		}
		return accessHTTP.NewAccessHandler(useCase, c.Logger()), nil
	})
}

// IssuerUseCase returns the issuer trust registry.
func (c *Container) IssuerUseCase() (issuerUseCase.IssuerUseCase, error) {
	return c.issuerUseCase.get(func() (issuerUseCase.IssuerUseCase, error) {
		repo, err := selectRepository[issuerUseCase.IssuerRepository](c,
			func(store *database.MemoryTxManager) issuerUseCase.IssuerRepository {
				return issuerRepository.NewMemoryIssuerRepository(store)
			},
			func(db *sql.DB) issuerUseCase.IssuerRepository {
				return issuerRepository.NewPostgreSQLIssuerRepository(db)
			},
			func(db *sql.DB) issuerUseCase.IssuerRepository {
				return issuerRepository.NewMySQLIssuerRepository(db)
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get issuer repository: %w", err)
		}
		ownership, err := c.OwnershipUseCase()
		if err != nil {
			return nil, err
		}
		txManager, recorder, businessMetrics, err := c.useCaseDeps()
		if err != nil {
			return nil, err
		}

		useCase := issuerUseCase.NewIssuerUseCase(txManager, repo, ownership, recorder, c.Clock())
		return issuerUseCase.NewIssuerUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// IssuerHandler returns the HTTP handler of the issuer trust registry.
func (c *Container) IssuerHandler() (*issuerHTTP.IssuerHandler, error) {
	return c.issuerHandler.get(func() (*issuerHTTP.IssuerHandler, error) {
		useCase, err := c.IssuerUseCase()
		if err != nil {
			return nil, err
		}
		return issuerHTTP.NewIssuerHandler(useCase, c.Logger()), nil
	})
}

// RevocationUseCase returns the revocation registry.
func (c *Container) RevocationUseCase() (revocationUseCase.RevocationUseCase, error) {
	return c.revocationUseCase.get(func() (revocationUseCase.RevocationUseCase, error) {
		repo, err := selectRepository[revocationUseCase.AnchorRepository](c,
			func(store *database.MemoryTxManager) revocationUseCase.AnchorRepository {
				return revocationRepository.NewMemoryAnchorRepository(store)
			},
			func(db *sql.DB) revocationUseCase.AnchorRepository {
				return revocationRepository.NewPostgreSQLAnchorRepository(db)
			},
			func(db *sql.DB) revocationUseCase.AnchorRepository {
				return revocationRepository.NewMySQLAnchorRepository(db)
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get anchor repository: %w", err)
		}
		txManager, recorder, businessMetrics, err := c.useCaseDeps()
		if err != nil {
			return nil, err
		}

		useCase := revocationUseCase.NewRevocationUseCase(txManager, repo, recorder, c.Clock())
		return revocationUseCase.NewRevocationUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// AnchorHandler returns the HTTP handler of the revocation registry.
func (c *Container) AnchorHandler() (*revocationHTTP.AnchorHandler, error) {
	return c.anchorHandler.get(func() (*revocationHTTP.AnchorHandler, error) {
		useCase, err := c.RevocationUseCase()
		if err != nil {
			return nil, err
		}
		return revocationHTTP.NewAnchorHandler(useCase, c.Logger()), nil
	})
}

// RecoveryUseCase returns the recovery coordinator. It transfers controllers
// through the identifier registry as RECOVERY_PRINCIPAL, inside its own transaction.
func (c *Container) RecoveryUseCase() (recoveryUseCase.RecoveryUseCase, error) {
	return c.recoveryUseCase.get(func() (recoveryUseCase.RecoveryUseCase, error) {
		repo, err := selectRepository[recoveryUseCase.GuardianRepository](c,
			func(store *database.MemoryTxManager) recoveryUseCase.GuardianRepository {
				return recoveryRepository.NewMemoryGuardianRepository(store)
			},
			func(db *sql.DB) recoveryUseCase.GuardianRepository {
				return recoveryRepository.NewPostgreSQLGuardianRepository(db)
			},
			func(db *sql.DB) recoveryUseCase.GuardianRepository {
				return recoveryRepository.NewMySQLGuardianRepository(db)
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get guardian repository: %w", err)
		}
		identifiers, err := c.IdentifierUseCase()
		if err != nil {
			return nil, err
		}
		txManager, recorder, businessMetrics, err := c.useCaseDeps()
		if err != nil {
			return nil, err
		}

		useCase := recoveryUseCase.NewRecoveryUseCase(
			txManager,
			repo,
			identifiers,
			principal.Principal(c.config.RecoveryPrincipal),
			recorder,
			c.Clock(),
		)
		return recoveryUseCase.NewRecoveryUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// RecoveryHandler returns the HTTP handler of the recovery coordinator.
func (c *Container) RecoveryHandler() (*recoveryHTTP.RecoveryHandler, error) {
	return c.recoveryHandler.get(func() (*recoveryHTTP.RecoveryHandler, error) {
		useCase, err := c.RecoveryUseCase()
		if err != nil {
			return nil, err
		}
		return recoveryHTTP.NewRecoveryHandler(useCase, c.Logger()), nil
	})
}

// DirectoryUseCase returns the directory hub.
func (c *Container) DirectoryUseCase() (directoryUseCase.DirectoryUseCase, error) {
	return c.directoryUseCase.get(func() (directoryUseCase.DirectoryUseCase, error) {
		repo, err := selectRepository[directoryUseCase.DirectoryRepository](c,
			func(store *database.MemoryTxManager) directoryUseCase.DirectoryRepository {
				return directoryRepository.NewMemoryDirectoryRepository(store)
			},
			func(db *sql.DB) directoryUseCase.DirectoryRepository {
				return directoryRepository.NewPostgreSQLDirectoryRepository(db)
			},
			func(db *sql.DB) directoryUseCase.DirectoryRepository {
				return directoryRepository.NewMySQLDirectoryRepository(db)
			},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get directory repository: %w", err)
		}
		ownership, err := c.OwnershipUseCase()
		if err != nil {
			return nil, err
		}
		txManager, recorder, businessMetrics, err := c.useCaseDeps()
		if err != nil {
			return nil, err
		}

		useCase := directoryUseCase.NewDirectoryUseCase(txManager, repo, ownership, recorder, c.Clock())
		return directoryUseCase.NewDirectoryUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// DirectoryHandler returns the HTTP handler of the directory hub.
func (c *Container) DirectoryHandler() (*directoryHTTP.DirectoryHandler, error) {
	return c.directoryHandler.get(func() (*directoryHTTP.DirectoryHandler, error) {
		useCase, err := c.DirectoryUseCase()
		if err != nil {
			return nil, err
		}
		return directoryHTTP.NewDirectoryHandler(useCase, c.Logger()), nil
	})
}
