package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	cache       *SessionCache
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client, cache *SessionCache) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		cache:       cache,
		now:         time.Now,
	}
}

// Session resolves a token. ErrSessionNotFound is returned for unknown, logged out
// and expired tokens.
func (lc *LoginChecker) Session(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	s, ok := lc.cache.Get(token)
	if !ok {
		raw, err := lc.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		if err != nil {
			return nil, err
		}
		s, err = decodeSession(token, raw)
		if err != nil {
			return nil, err
		}
		lc.cache.Set(s)
	}

	if lc.now().Sub(s.CreatedAt) > lc.ttl {
		lc.cache.Invalidate(token)
		return nil, ErrSessionNotFound
	}

	return s, nil
}
