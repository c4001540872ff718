package internal

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/2beens/fittrack/internal/fitness/dailystats"
	"github.com/2beens/fittrack/internal/fitness/profile"
	"github.com/2beens/fittrack/internal/fitness/sessions"
	"github.com/2beens/fittrack/internal/users"
)

type usersStore interface {
	Create(ctx context.Context, u *users.User, seed users.ProfileSeed) (*users.User, error)
	Get(ctx context.Context, id int) (*users.User, error)
	GetByUsername(ctx context.Context, username string) (*users.User, error)
}

type profilesStore interface {
	GetOrCreate(ctx context.Context, userID int) (*profile.Profile, error)
	Update(ctx context.Context, p *profile.Profile) error
	IncrementWorkouts(ctx context.Context, userID int) error
	AddExercise(ctx context.Context, userID int, seconds int64) (*profile.Profile, error)
}

type dailyStatsStore interface {
	GetOrCreate(ctx context.Context, userID int, day time.Time) (*dailystats.DailyStats, error)
	AddTimeSpent(ctx context.Context, userID int, day time.Time, seconds int64) error
	AddWorkout(ctx context.Context, userID int, day time.Time, calories float64) error
	SetWeight(ctx context.Context, userID int, day time.Time, weight float64) error
	ListRange(ctx context.Context, userID int, from, to time.Time) ([]dailystats.DailyStats, error)
	LastWeightBefore(ctx context.Context, userID int, day time.Time) (*float64, error)
}

type sessionsStore interface {
	Create(ctx context.Context, session sessions.SessionActivity) (*sessions.SessionActivity, error)
	FindOpen(ctx context.Context, userID int, sessionID string) (*sessions.SessionActivity, error)
	Close(ctx context.Context, id int, logoutTime time.Time, durationSeconds int64) (bool, error)
}

// Stores groups the repositories behind the fitness services.
type Stores struct {
	Users    usersStore
	Profiles profilesStore
	Stats    dailyStatsStore
	Sessions sessionsStore
}

func PostgresStores(dbPool *pgxpool.Pool) Stores {
	return Stores{
		Users:    users.NewRepo(dbPool),
		Profiles: profile.NewRepo(dbPool),
		Stats:    dailystats.NewRepo(dbPool),
		Sessions: sessions.NewRepo(dbPool),
	}
}

func MemoryStores() Stores {
	return Stores{
		Users:    users.NewMemoryRepo(),
		Profiles: profile.NewMemoryRepo(),
		Stats:    dailystats.NewMemoryRepo(),
		Sessions: sessions.NewMemoryRepo(),
	}
}
