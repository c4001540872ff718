package dailystats

import (
	"context"
	"sort"
	"sync"
	"time"
)

type dayKey struct {
	userID int
	day    string
}

// MemoryRepo is an in-process Repo used by unit tests. Every method holds the
// lock for its whole duration, which gives the same per-row atomicity as the
// SQL updates.
type MemoryRepo struct {
	mutex  sync.Mutex
	nextID int
	stats  map[dayKey]*DailyStats

	// CreateCount counts inserted rows, so tests can assert on get-or-create races.
	CreateCount int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID: 1,
		stats:  make(map[dayKey]*DailyStats),
	}
}

func keyOf(userID int, day time.Time) dayKey {
	return dayKey{userID: userID, day: day.Format(time.DateOnly)}
}

func (r *MemoryRepo) GetOrCreate(_ context.Context, userID int, day time.Time) (*DailyStats, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	k := keyOf(userID, day)
	if s, ok := r.stats[k]; ok {
		c := copyStats(s)
		return &c, nil
	}

	s := &DailyStats{
		ID:     r.nextID,
		UserID: userID,
		Date:   day,
	}
	r.nextID++
	r.CreateCount++
	r.stats[k] = s

	c := copyStats(s)
	return &c, nil
}

func (r *MemoryRepo) AddTimeSpent(_ context.Context, userID int, day time.Time, seconds int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	s, ok := r.stats[keyOf(userID, day)]
	if !ok {
		return ErrNotFound
	}
	s.TimeSpentToday += seconds
	return nil
}

func (r *MemoryRepo) AddWorkout(_ context.Context, userID int, day time.Time, calories float64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	s, ok := r.stats[keyOf(userID, day)]
	if !ok {
		return ErrNotFound
	}
	s.CaloriesBurned += calories
	s.WorkoutsToday++
	return nil
}

func (r *MemoryRepo) SetWeight(_ context.Context, userID int, day time.Time, weight float64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	s, ok := r.stats[keyOf(userID, day)]
	if !ok {
		return ErrNotFound
	}
	s.Weight = &weight
	return nil
}

func (r *MemoryRepo) ListRange(_ context.Context, userID int, from, to time.Time) ([]DailyStats, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stats := make([]DailyStats, 0)
	for _, s := range r.stats {
		if s.UserID != userID || s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		stats = append(stats, copyStats(s))
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date.Before(stats[j].Date)
	})
	return stats, nil
}

func (r *MemoryRepo) LastWeightBefore(_ context.Context, userID int, day time.Time) (*float64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var last *DailyStats
	for _, s := range r.stats {
		if s.UserID != userID || s.Weight == nil || !s.Date.Before(day) {
			continue
		}
		if last == nil || s.Date.After(last.Date) {
			last = s
		}
	}
	if last == nil {
		return nil, nil
	}
	w := *last.Weight
	return &w, nil
}

// Put stores a row as-is, overwriting any existing row for the same key.
func (r *MemoryRepo) Put(s DailyStats) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if s.ID == 0 {
		s.ID = r.nextID
		r.nextID++
	}
	r.stats[keyOf(s.UserID, s.Date)] = &s
}

func copyStats(s *DailyStats) DailyStats {
	c := *s
	if s.Weight != nil {
		w := *s.Weight
		c.Weight = &w
	}
	return c
}
