package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// SessionUser returns the id of the user owning the session token.
func (c *LoginChecker) SessionUser(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrNoSession
	}

	value, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNoSession
		}
		return uuid.Nil, fmt.Errorf("get session: %w", err)
	}

	s, err := parseSession(value)
	if err != nil {
		return uuid.Nil, err
	}

	if time.Since(s.CreatedAt) > c.ttl {
		return uuid.Nil, ErrNoSession
	}

	return s.UserID, nil
}
