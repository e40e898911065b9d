package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/trustregistry/cmd/app/commands"
	"github.com/allisson/trustregistry/internal/app"
	"github.com/allisson/trustregistry/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "worker",
			Usage: "Start the event dispatcher",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunWorker(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "create-signing-key",
			Usage: "Generate an event signing key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "Encrypt the key with this gocloud.dev secrets URI (e.g. hashivault://mykey)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateSigningKey(ctx, commands.DefaultIO().Writer, cmd.String("kms-key-uri"))
			},
		},
		{
			Name:  "verify-events",
			Usage: "Verify the signatures of the event log",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				eventUseCase, err := container.EventUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyEvents(
					ctx,
					eventUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
