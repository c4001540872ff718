package workouts

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/fitness/dailystats"
	"github.com/2beens/fittrack/internal/fitness/profile"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
)

type dailyStatsRepo interface {
	GetOrCreate(ctx context.Context, userID int, day time.Time) (*dailystats.DailyStats, error)
	AddWorkout(ctx context.Context, userID int, day time.Time, calories float64) error
}

type profilesRepo interface {
	GetOrCreate(ctx context.Context, userID int) (*profile.Profile, error)
	IncrementWorkouts(ctx context.Context, userID int) error
	AddExercise(ctx context.Context, userID int, seconds int64) (*profile.Profile, error)
}

type Service struct {
	stats          dailyStatsRepo
	profiles       profilesRepo
	calendar       fitness.Calendar
	metricsManager *metrics.Manager
}

func NewService(
	stats dailyStatsRepo,
	profiles profilesRepo,
	calendar fitness.Calendar,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		stats:          stats,
		profiles:       profiles,
		calendar:       calendar,
		metricsManager: metricsManager,
	}
}

// CompleteWorkout records a finished workout in today's stats and the lifetime
// profile counter. The returned total is the calories stored before this call plus
// the new amount. It is not re-read, so concurrent completions of the same day may
// each see a total that misses the others.
func (s *Service) CompleteWorkout(ctx context.Context, userID int, raw fitness.Field) (_ float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.complete")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	calories, err := raw.NonNegativeFloat("calories_burned")
	if err != nil {
		return 0, err
	}

	today := s.calendar.Today()
	stats, err := s.stats.GetOrCreate(ctx, userID, today)
	if err != nil {
		return 0, fmt.Errorf("get daily stats: %w", err)
	}
	before := stats.CaloriesBurned

	if err := s.stats.AddWorkout(ctx, userID, today, calories); err != nil {
		return 0, fmt.Errorf("add workout: %w", err)
	}

	if _, err := s.profiles.GetOrCreate(ctx, userID); err != nil {
		return 0, fmt.Errorf("get profile: %w", err)
	}
	if err := s.profiles.IncrementWorkouts(ctx, userID); err != nil {
		return 0, fmt.Errorf("increment workouts: %w", err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsCompleted.Inc()
	}

	return before + calories, nil
}

// TrackWorkout adds exercise time to the lifetime profile totals and counts one
// workout. An absent exercise_time counts as zero.
func (s *Service) TrackWorkout(ctx context.Context, userID int, raw fitness.Field) (_ *profile.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.track")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var seconds int64
	if !raw.Blank() {
		seconds, err = raw.NonNegativeInt("exercise_time")
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.profiles.GetOrCreate(ctx, userID); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p, err := s.profiles.AddExercise(ctx, userID, seconds)
	if err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsCompleted.Inc()
	}

	return p, nil
}
