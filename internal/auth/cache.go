package auth

import (
	"errors"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// SessionCache keeps recently resolved sessions in process memory, in front of redis.
// A nil *SessionCache is valid and caches nothing.
type SessionCache struct {
	cache         *freecache.Cache
	expireSeconds int
}

func NewSessionCache(sizeBytes int, expire time.Duration) *SessionCache {
	return &SessionCache{
		cache:         freecache.NewCache(sizeBytes),
		expireSeconds: int(expire.Seconds()),
	}
}

func (c *SessionCache) Get(token string) (*Session, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.cache.Get([]byte(token))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Errorf("session cache get: %s", err)
		}
		return nil, false
	}
	s, err := decodeSession(token, string(raw))
	if err != nil {
		log.Errorf("session cache decode: %s", err)
		return nil, false
	}
	return s, true
}

func (c *SessionCache) Set(s *Session) {
	if c == nil {
		return
	}
	raw, err := encodeSession(s)
	if err != nil {
		log.Errorf("session cache encode: %s", err)
		return
	}
	if err := c.cache.Set([]byte(s.Token), []byte(raw), c.expireSeconds); err != nil {
		log.Errorf("session cache set: %s", err)
	}
}

func (c *SessionCache) Invalidate(token string) {
	if c == nil {
		return
	}
	c.cache.Del([]byte(token))
}
