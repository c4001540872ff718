package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is what a token resolves to. SessionID identifies the login in the
// session activity log and stays the same for the whole life of the token.
type Session struct {
	Token     string
	UserID    int
	Username  string
	SessionID string
	CreatedAt time.Time
}

// storedSession is the redis representation of a Session.
type storedSession struct {
	UserID    int    `json:"userId"`
	Username  string `json:"username"`
	SessionID string `json:"sessionId"`
	CreatedAt int64  `json:"createdAt"`
}

func encodeSession(s *Session) (string, error) {
	b, err := json.Marshal(storedSession{
		UserID:    s.UserID,
		Username:  s.Username,
		SessionID: s.SessionID,
		CreatedAt: s.CreatedAt.Unix(),
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeSession(token, raw string) (*Session, error) {
	var stored storedSession
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		UserID:    stored.UserID,
		Username:  stored.Username,
		SessionID: stored.SessionID,
		CreatedAt: time.Unix(stored.CreatedAt, 0),
	}, nil
}

type sessionCtxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// SessionFromContext returns the session the auth middleware stored in ctx.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*Session)
	return s, ok && s != nil
}
