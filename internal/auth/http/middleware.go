// Package http provides the authentication and rate limiting middleware of the API.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/trustregistry/internal/auth/usecase"
	apperrors "github.com/allisson/trustregistry/internal/errors"
	"github.com/allisson/trustregistry/internal/httputil"
	"github.com/allisson/trustregistry/internal/principal"
)

// AuthenticationMiddleware resolves the sender of a request from its bearer token.
//
// The token is read from "Authorization: Bearer <token>" (the scheme is matched
// case-insensitively), verified and checked against the deny-list. On success the
// token subject is stored in the request context with principal.WithSender, which
// is where every use case reads its caller from.
//
// Missing, malformed, expired or revoked tokens abort with 401.
func AuthenticationMiddleware(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		claims, err := tokenUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := principal.WithSender(c.Request.Context(), claims.Subject)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("sender", claims.Subject.String()),
			slog.String("token_id", claims.ID))

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
