package profile

import (
	"context"
	"sync"
)

// MemoryRepo is an in-process Repo used by unit tests.
type MemoryRepo struct {
	mutex    sync.Mutex
	profiles map[int]*Profile

	UpdateCount int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		profiles: make(map[int]*Profile),
	}
}

func (r *MemoryRepo) GetOrCreate(_ context.Context, userID int) (*Profile, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		p = NewDefault(userID)
		r.profiles[userID] = p
	}
	c := *p
	return &c, nil
}

func (r *MemoryRepo) Update(_ context.Context, p *Profile) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored, ok := r.profiles[p.UserID]
	if !ok {
		return ErrNotFound
	}
	stored.Age = p.Age
	stored.DateOfBirth = p.DateOfBirth
	stored.Gender = p.Gender
	stored.Height = p.Height
	stored.Weight = p.Weight
	stored.Level = p.Level
	r.UpdateCount++
	return nil
}

func (r *MemoryRepo) IncrementWorkouts(_ context.Context, userID int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	p.TotalWorkouts++
	return nil
}

func (r *MemoryRepo) AddExercise(_ context.Context, userID int, seconds int64) (*Profile, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	p.TotalExerciseTime += seconds
	p.TotalWorkouts++
	c := *p
	return &c, nil
}

// Put stores a profile as-is.
func (r *MemoryRepo) Put(p Profile) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.profiles[p.UserID] = &p
}
