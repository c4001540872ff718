package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/fitness/dailystats"
	"github.com/2beens/fittrack/internal/fitness/profile"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
)

// WindowDays is the length of the chart series, today included.
const WindowDays = 30

type dailyStatsRepo interface {
	ListRange(ctx context.Context, userID int, from, to time.Time) ([]dailystats.DailyStats, error)
	LastWeightBefore(ctx context.Context, userID int, day time.Time) (*float64, error)
}

type profilesRepo interface {
	GetOrCreate(ctx context.Context, userID int) (*profile.Profile, error)
}

type Point struct {
	Date           string   `json:"date"`
	CaloriesBurned float64  `json:"calories_burned"`
	Weight         *float64 `json:"weight"`
}

type Summary struct {
	TotalWorkouts    int      `json:"total_workouts"`
	TotalCalories    float64  `json:"total_calories"`
	TotalMinutes     int64    `json:"total_minutes"`
	TimeSpentSeconds int64    `json:"time_spent_seconds"`
	CurrentWeight    *float64 `json:"current_weight"`
	CaloriesToday    float64  `json:"calories_today"`
	WorkoutsToday    int      `json:"workouts_today"`
}

type Dashboard struct {
	Summary   Summary `json:"summary_stats"`
	ChartData []Point `json:"chart_data"`
}

type Aggregator struct {
	stats    dailyStatsRepo
	profiles profilesRepo
	calendar fitness.Calendar
}

func NewAggregator(stats dailyStatsRepo, profiles profilesRepo, calendar fitness.Calendar) *Aggregator {
	return &Aggregator{
		stats:    stats,
		profiles: profiles,
		calendar: calendar,
	}
}

// Get builds the 30 day dashboard ending today. Days without stats show zero
// calories and carry the last known weight forward.
func (a *Aggregator) Get(ctx context.Context, userID int) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.get")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	today := a.calendar.Today()
	start := today.AddDate(0, 0, -(WindowDays - 1))

	p, err := a.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	rows, err := a.stats.ListRange(ctx, userID, start, today)
	if err != nil {
		return nil, fmt.Errorf("list daily stats: %w", err)
	}

	byDay := make(map[string]dailystats.DailyStats, len(rows))
	var totalCalories float64
	for _, row := range rows {
		byDay[row.Date.Format(time.DateOnly)] = row
		totalCalories += row.CaloriesBurned
	}

	lastKnownWeight, err := a.stats.LastWeightBefore(ctx, userID, start)
	if err != nil {
		return nil, fmt.Errorf("last weight before window: %w", err)
	}
	if lastKnownWeight == nil {
		lastKnownWeight = p.Weight
	}

	chart := make([]Point, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		point := Point{Date: day}
		if row, ok := byDay[day]; ok {
			point.CaloriesBurned = row.CaloriesBurned
			if row.Weight != nil {
				lastKnownWeight = row.Weight
			}
		}
		point.Weight = lastKnownWeight
		chart = append(chart, point)
	}

	summary := Summary{
		TotalWorkouts: p.TotalWorkouts,
		TotalCalories: totalCalories,
		CurrentWeight: p.Weight,
	}
	if w := chart[len(chart)-1].Weight; w != nil {
		summary.CurrentWeight = w
	}
	if row, ok := byDay[today.Format(time.DateOnly)]; ok {
		summary.CaloriesToday = row.CaloriesBurned
		summary.WorkoutsToday = row.WorkoutsToday
		summary.TimeSpentSeconds = row.TimeSpentToday
		summary.TotalMinutes = row.TimeSpentToday / 60
	}

	return &Dashboard{
		Summary:   summary,
		ChartData: chart,
	}, nil
}
