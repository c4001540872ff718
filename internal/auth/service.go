package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittrack/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fittrack-session||"
	tokensSetKey     = "fittrack-sessions"
	tokenLength      = 35
)

type Service struct {
	redisClient *redis.Client
	cache       *SessionCache
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc   func(s int) (string, error)
	NewSessionIDFunc func() string
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
	cache *SessionCache,
) *Service {
	return &Service{
		ttl:              ttl,
		redisClient:      redisClient,
		cache:            cache,
		RandStringFunc:   pkg.GenerateRandomString,
		NewSessionIDFunc: uuid.NewString,
	}
}

// Login opens a new session for an already authenticated user.
func (as *Service) Login(ctx context.Context, userID int, username string, createdAt time.Time) (*Session, error) {
	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s := &Session{
		Token:     token,
		UserID:    userID,
		Username:  username,
		SessionID: as.NewSessionIDFunc(),
		CreatedAt: time.Unix(createdAt.Unix(), 0),
	}
	raw, err := encodeSession(s)
	if err != nil {
		return nil, err
	}

	if err := as.redisClient.Set(ctx, sessionKeyPrefix+token, raw, as.ttl).Err(); err != nil {
		return nil, err
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return nil, err
	}

	return s, nil
}

// Logout removes the session and returns what it was. ErrSessionNotFound is
// returned when the token is not logged in.
func (as *Service) Logout(ctx context.Context, token string) (*Session, error) {
	sessionKey := sessionKeyPrefix + token
	raw, err := as.redisClient.Get(ctx, sessionKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	s, err := decodeSession(token, raw)
	if err != nil {
		return nil, err
	}

	if err := as.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return nil, err
	}
	as.cache.Invalidate(token)

	// remove token from the list of sessions
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return nil, err
	}

	return s, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Warnln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Warnf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		raw, err := as.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
		if errors.Is(err, redis.Nil) {
			// key already expired in redis, only the set entry is left
			toRemove = append(toRemove, token)
			continue
		}
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		s, err := decodeSession(token, raw)
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			toRemove = append(toRemove, token)
			continue
		}

		if time.Since(s.CreatedAt) > as.ttl {
			log.Warnf("=>\twill clean the session of user %d", s.UserID)
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
		as.cache.Invalidate(token)

		// remove token from the list of sessions
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
	}
}
