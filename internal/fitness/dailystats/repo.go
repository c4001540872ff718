package dailystats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

const selectColumns = `id, user_id, date, calories_burned, time_spent_today, workouts_today, weight`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetOrCreate returns the stats row for the user and day, inserting an empty one
// if missing. A concurrent insert of the same key is resolved by re-reading the
// row the other request created.
func (r *Repo) GetOrCreate(ctx context.Context, userID int, day time.Time) (_ *DailyStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailystats.getorcreate")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("day", day.Format(time.DateOnly)),
	)

	stats, err := r.get(ctx, userID, day)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO daily_stats (user_id, date)
		VALUES ($1, $2)
	`, userID, day)
	if err != nil && !pkg.IsUniqueViolationError(err) {
		return nil, fmt.Errorf("insert daily stats: %w", err)
	}
	if err != nil {
		span.AddEvent("concurrent-create")
	}

	// either this request or a concurrent one created it
	return r.get(ctx, userID, day)
}

func (r *Repo) get(ctx context.Context, userID int, day time.Time) (*DailyStats, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM daily_stats
		WHERE user_id = $1 AND date = $2
	`, userID, day)

	stats, err := scanStats(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get daily stats: %w", err)
	}
	return stats, nil
}

// AddTimeSpent atomically adds seconds to time_spent_today.
func (r *Repo) AddTimeSpent(ctx context.Context, userID int, day time.Time, seconds int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailystats.addtimespent")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int64("seconds", seconds))

	tag, err := r.db.Exec(ctx, `
		UPDATE daily_stats
		SET time_spent_today = time_spent_today + $3
		WHERE user_id = $1 AND date = $2
	`, userID, day, seconds)
	if err != nil {
		return fmt.Errorf("add time spent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddWorkout atomically adds calories and one workout to the day.
func (r *Repo) AddWorkout(ctx context.Context, userID int, day time.Time, calories float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailystats.addworkout")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Float64("calories", calories))

	tag, err := r.db.Exec(ctx, `
		UPDATE daily_stats
		SET calories_burned = calories_burned + $3,
		    workouts_today  = workouts_today + 1
		WHERE user_id = $1 AND date = $2
	`, userID, day, calories)
	if err != nil {
		return fmt.Errorf("add workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetWeight stores the weight snapshot for the day.
func (r *Repo) SetWeight(ctx context.Context, userID int, day time.Time, weight float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailystats.setweight")
	defer func() { endSpan(span, err) }()

	tag, err := r.db.Exec(ctx, `
		UPDATE daily_stats
		SET weight = $3
		WHERE user_id = $1 AND date = $2
	`, userID, day, weight)
	if err != nil {
		return fmt.Errorf("set weight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRange returns the user's rows with from <= date <= to, oldest first.
func (r *Repo) ListRange(ctx context.Context, userID int, from, to time.Time) (_ []DailyStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailystats.listrange")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(
		attribute.String("from", from.Format(time.DateOnly)),
		attribute.String("to", to.Format(time.DateOnly)),
	)

	rows, err := r.db.Query(ctx, `
		SELECT `+selectColumns+`
		FROM daily_stats
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily stats: %w", err)
	}
	defer rows.Close()

	stats := make([]DailyStats, 0)
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily stats: %w", err)
		}
		stats = append(stats, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// LastWeightBefore returns the most recent non-null weight recorded strictly
// before the given day, or nil if there is none.
func (r *Repo) LastWeightBefore(ctx context.Context, userID int, day time.Time) (_ *float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailystats.lastweightbefore")
	defer func() { endSpan(span, err) }()

	var weight float64
	err = r.db.QueryRow(ctx, `
		SELECT weight
		FROM daily_stats
		WHERE user_id = $1 AND date < $2 AND weight IS NOT NULL
		ORDER BY date DESC
		LIMIT 1
	`, userID, day).Scan(&weight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last weight before: %w", err)
	}
	return &weight, nil
}

func scanStats(row pgx.Row) (*DailyStats, error) {
	s := &DailyStats{}
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Date,
		&s.CaloriesBurned, &s.TimeSpentToday, &s.WorkoutsToday,
		&s.Weight,
	); err != nil {
		return nil, err
	}
	return s, nil
}
