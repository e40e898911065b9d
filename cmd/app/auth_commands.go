package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/trustregistry/cmd/app/commands"
	"github.com/allisson/trustregistry/internal/app"
	"github.com/allisson/trustregistry/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-token",
			Usage: "Issue a bearer token for a principal",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "subject",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Principal the token authenticates as",
				},
				&cli.DurationFlag{
					Name:  "ttl",
					Usage: "Token lifetime (defaults to AUTH_TOKEN_EXPIRATION_SECONDS)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("subject"),
					cmd.Duration("ttl"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "revoke-token",
			Usage: "Revoke a bearer token until it expires",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Token to revoke",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				if cfg.AuthDenylistRedisURL == "" {
					container.Logger().Warn(
						"AUTH_DENYLIST_REDIS_URL is not set, the revocation is not visible to running servers",
					)
				}

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunRevokeToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
				)
			},
		},
	}
}
