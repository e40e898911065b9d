package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/trustregistry/cmd/app/commands"
	"github.com/allisson/trustregistry/internal/app"
	"github.com/allisson/trustregistry/internal/config"
	directoryDomain "github.com/allisson/trustregistry/internal/directory/domain"
)

// ownerFlag selects the principal an owner-gated command acts as.
func ownerFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "as",
		Usage: "Principal to act as (defaults to OWNER_PRINCIPAL)",
	}
}

func actingOwner(cmd *cli.Command, cfg *config.Config) string {
	if owner := cmd.String("as"); owner != "" {
		return owner
	}
	return cfg.OwnerPrincipal
}

func getRegistryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "set-recovery-manager",
			Usage: "Grant the recovery manager role of the identifier registry",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "manager",
					Aliases: []string{"m"},
					Usage:   "Recovery manager principal (defaults to RECOVERY_PRINCIPAL)",
				},
				ownerFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				if err := container.Bootstrap(ctx); err != nil {
					return err
				}

				identifiers, err := container.IdentifierUseCase()
				if err != nil {
					return err
				}

				manager := cmd.String("manager")
				if manager == "" {
					manager = cfg.RecoveryPrincipal
				}

				return commands.RunSetRecoveryManager(
					ctx,
					identifiers,
					container.Logger(),
					commands.DefaultIO().Writer,
					actingOwner(cmd, cfg),
					manager,
				)
			},
		},
		{
			Name:  "set-directory",
			Usage: "Publish the addresses of the registries",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "identifier-registry", Usage: "Identifier registry address"},
				&cli.StringFlag{Name: "access-control", Usage: "Access control registry address"},
				&cli.StringFlag{Name: "recovery", Usage: "Recovery coordinator address"},
				&cli.StringFlag{Name: "revocation", Usage: "Revocation registry address"},
				&cli.StringFlag{Name: "issuer-registry", Usage: "Issuer trust registry address"},
				ownerFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				if err := container.Bootstrap(ctx); err != nil {
					return err
				}

				directory, err := container.DirectoryUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetDirectory(
					ctx,
					directory,
					container.Logger(),
					commands.DefaultIO().Writer,
					actingOwner(cmd, cfg),
					directoryDomain.Addresses{
						IdentifierRegistry: cmd.String("identifier-registry"),
						AccessControl:      cmd.String("access-control"),
						Recovery:           cmd.String("recovery"),
						Revocation:         cmd.String("revocation"),
						IssuerRegistry:     cmd.String("issuer-registry"),
					},
					cmd.String("format"),
				)
			},
		},
	}
}
