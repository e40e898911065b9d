package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	directoryDomain "github.com/allisson/trustregistry/internal/directory/domain"
	directoryUseCase "github.com/allisson/trustregistry/internal/directory/usecase"
	identifierUseCase "github.com/allisson/trustregistry/internal/identifier/usecase"
	"github.com/allisson/trustregistry/internal/principal"
)

// RunSetRecoveryManager makes manager the recovery manager of the identifier
// registry, acting as owner. Nothing is changed or recorded when manager
// already holds the role.
func RunSetRecoveryManager(
	ctx context.Context,
	identifiers identifierUseCase.IdentifierUseCase,
	logger *slog.Logger,
	writer io.Writer,
	owner, manager string,
) error {
	ctx = principal.WithSender(ctx, principal.Principal(owner))

	current, err := identifiers.RecoveryManager(ctx)
	if err != nil {
		return fmt.Errorf("failed to read recovery manager: %w", err)
	}

	if current == principal.Principal(manager) {
		logger.Info("recovery manager unchanged", slog.String("manager", manager))
		_, _ = fmt.Fprintf(writer, "Recovery manager already set to %s\n", manager)
		return nil
	}

	if err := identifiers.SetRecoveryManager(ctx, principal.Principal(manager)); err != nil {
		return fmt.Errorf("failed to set recovery manager: %w", err)
	}

	logger.Info("recovery manager set",
		slog.String("old_manager", current.String()),
		slog.String("new_manager", manager),
	)
	_, _ = fmt.Fprintf(writer, "Recovery manager set to %s\n", manager)
	return nil
}

// RunSetDirectory publishes the registry addresses, acting as owner.
func RunSetDirectory(
	ctx context.Context,
	directory directoryUseCase.DirectoryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	owner string,
	addresses directoryDomain.Addresses,
	format string,
) error {
	ctx = principal.WithSender(ctx, principal.Principal(owner))

	stored, err := directory.SetAddresses(ctx, addresses)
	if err != nil {
		return fmt.Errorf("failed to set directory: %w", err)
	}

	logger.Info("directory updated", slog.Int64("updated_at", stored.UpdatedAt))

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"identifier_registry": stored.IdentifierRegistry,
			"access_control":      stored.AccessControl,
			"recovery":            stored.Recovery,
			"revocation":          stored.Revocation,
			"issuer_registry":     stored.IssuerRegistry,
			"updated_at":          stored.UpdatedAt,
		})
	}

	_, _ = fmt.Fprintf(writer, "Identifier Registry: %s\n", stored.IdentifierRegistry)
	_, _ = fmt.Fprintf(writer, "Access Control:      %s\n", stored.AccessControl)
	_, _ = fmt.Fprintf(writer, "Recovery:            %s\n", stored.Recovery)
	_, _ = fmt.Fprintf(writer, "Revocation:          %s\n", stored.Revocation)
	_, _ = fmt.Fprintf(writer, "Issuer Registry:     %s\n", stored.IssuerRegistry)
	return nil
}
