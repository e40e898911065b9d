package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	authRepository "github.com/allisson/trustregistry/internal/auth/repository"
	authService "github.com/allisson/trustregistry/internal/auth/service"
	authUseCase "github.com/allisson/trustregistry/internal/auth/usecase"
)

type authComponents struct {
	tokenService lazy[authService.TokenService]
	denyList     lazy[authUseCase.DenyList]
	tokenUseCase lazy[authUseCase.TokenUseCase]
}

// TokenService returns the JWT service that signs and verifies sender tokens.
func (c *Container) TokenService() (authService.TokenService, error) {
	return c.tokenService.get(func() (authService.TokenService, error) {
		tokens, err := authService.NewJWTTokenService(c.config.AuthJWTSecret, c.config.AuthJWTIssuer)
		if err != nil {
			return nil, fmt.Errorf("failed to create token service: %w", err)
		}
		return tokens, nil
	})
}

// RedisClient returns the client of AUTH_DENYLIST_REDIS_URL.
func (c *Container) RedisClient() (*redis.Client, error) {
	return c.redis.get(func() (*redis.Client, error) {
		if c.config.AuthDenylistRedisURL == "" {
			return nil, fmt.Errorf("AUTH_DENYLIST_REDIS_URL is not set")
		}
		client, err := authRepository.ConnectRedis(context.Background(), c.config.AuthDenylistRedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return client, nil
	})
}

// DenyList returns the revoked token store. It is shared through Redis when
// AUTH_DENYLIST_REDIS_URL is set and local to the process otherwise.
func (c *Container) DenyList() (authUseCase.DenyList, error) {
	return c.denyList.get(func() (authUseCase.DenyList, error) {
		if c.config.AuthDenylistRedisURL == "" {
			return authRepository.NewMemoryDenyList(c.Clock()), nil
		}
		client, err := c.RedisClient()
		if err != nil {
			return nil, err
		}
		return authRepository.NewRedisDenyList(client), nil
	})
}

// TokenUseCase returns the use case behind issue-token, revoke-token and the
// authentication middleware.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	return c.tokenUseCase.get(func() (authUseCase.TokenUseCase, error) {
		tokens, err := c.TokenService()
		if err != nil {
			return nil, err
		}
		denyList, err := c.DenyList()
		if err != nil {
			return nil, err
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		useCase := authUseCase.NewTokenUseCase(tokens, denyList, c.config.AuthTokenExpiration)
		return authUseCase.NewTokenUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}
