package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-process Repo used by unit tests.
type MemoryRepo struct {
	mutex  sync.Mutex
	users  map[int]*User
	seeds  map[int]ProfileSeed
	nextID int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:  make(map[int]*User),
		seeds:  make(map[int]ProfileSeed),
		nextID: 1,
	}
}

func (r *MemoryRepo) Create(_ context.Context, u *User, seed ProfileSeed) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return nil, ErrEmailTaken
		}
	}

	created := *u
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	r.nextID++
	r.users[created.ID] = &created
	r.seeds[created.ID] = seed

	c := created
	return &c, nil
}

func (r *MemoryRepo) Get(_ context.Context, id int) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *MemoryRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// Seed returns the profile fields the user registered with.
func (r *MemoryRepo) Seed(userID int) (ProfileSeed, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	seed, ok := r.seeds[userID]
	return seed, ok
}
