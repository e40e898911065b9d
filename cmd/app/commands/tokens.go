package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	authUseCase "github.com/allisson/trustregistry/internal/auth/usecase"
	"github.com/allisson/trustregistry/internal/principal"
)

// RunIssueToken mints a bearer token whose subject becomes the request sender.
// A zero ttl uses AUTH_TOKEN_EXPIRATION_SECONDS.
func RunIssueToken(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	subject string,
	ttl time.Duration,
	format string,
) error {
	issued, err := tokenUseCase.Issue(ctx, principal.Principal(subject), ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("token issued",
		slog.String("subject", issued.Subject.String()),
		slog.String("jti", issued.ID),
		slog.Time("expires_at", issued.ExpiresAt),
	)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"token":      issued.Token,
			"jti":        issued.ID,
			"subject":    issued.Subject.String(),
			"expires_at": issued.ExpiresAt.UTC().Format(time.RFC3339),
		})
	}

	_, _ = fmt.Fprintf(writer, "Subject:    %s\n", issued.Subject)
	_, _ = fmt.Fprintf(writer, "Token ID:   %s\n", issued.ID)
	_, _ = fmt.Fprintf(writer, "Expires At: %s\n\n", issued.ExpiresAt.UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintf(writer, "%s\n", issued.Token)
	return nil
}

// RunRevokeToken adds the token to the deny-list until it expires.
func RunRevokeToken(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	token string,
) error {
	if err := tokenUseCase.Revoke(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	logger.Info("token revoked")
	_, _ = fmt.Fprintln(writer, "Token revoked")
	return nil
}
