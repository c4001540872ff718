package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-process Repo used by unit tests.
type MemoryRepo struct {
	mutex    sync.Mutex
	nextID   int
	sessions []*SessionActivity
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID: 1,
	}
}

func (r *MemoryRepo) Create(_ context.Context, session SessionActivity) (*SessionActivity, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, s := range r.sessions {
		if s.UserID == session.UserID && s.SessionID == session.SessionID {
			c := copySession(s)
			return &c, nil
		}
	}

	session.ID = r.nextID
	r.nextID++
	stored := session
	r.sessions = append(r.sessions, &stored)
	return &session, nil
}

func (r *MemoryRepo) FindOpen(_ context.Context, userID int, sessionID string) (*SessionActivity, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var latest *SessionActivity
	for _, s := range r.sessions {
		if s.UserID != userID || !s.IsOpen() {
			continue
		}
		if sessionID != "" && s.SessionID == sessionID {
			c := copySession(s)
			return &c, nil
		}
		if latest == nil || !s.LoginTime.Before(latest.LoginTime) {
			latest = s
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	c := copySession(latest)
	return &c, nil
}

func (r *MemoryRepo) Close(_ context.Context, id int, logoutTime time.Time, durationSeconds int64) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, s := range r.sessions {
		if s.ID != id {
			continue
		}
		if !s.IsOpen() {
			return false, nil
		}
		s.LogoutTime = &logoutTime
		s.DurationSeconds = durationSeconds
		return true, nil
	}
	return false, nil
}

// All returns copies of every stored session, in creation order.
func (r *MemoryRepo) All() []SessionActivity {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	all := make([]SessionActivity, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, copySession(s))
	}
	return all
}

func copySession(s *SessionActivity) SessionActivity {
	c := *s
	if s.LogoutTime != nil {
		t := *s.LogoutTime
		c.LogoutTime = &t
	}
	return c
}
