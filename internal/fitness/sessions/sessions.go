package sessions

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("session activity not found")

// SessionActivity tracks one login session. An open session has no LogoutTime.
// LogoutTime and DurationSeconds are written once, on the matching logout.
type SessionActivity struct {
	ID              int        `json:"id"`
	UserID          int        `json:"userId"`
	SessionID       string     `json:"sessionId"`
	LoginTime       time.Time  `json:"loginTime"`
	LogoutTime      *time.Time `json:"logoutTime,omitempty"`
	DurationSeconds int64      `json:"durationSeconds"`
	Date            time.Time  `json:"date"`
}

func (s *SessionActivity) IsOpen() bool {
	return s.LogoutTime == nil
}
