package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

var ErrNotFound = errors.New("profile not found")

const selectColumns = `user_id, age, date_of_birth, gender, height, weight, level, total_exercise_time, total_workouts`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// GetOrCreate returns the user's profile, creating a default one if missing.
func (r *Repo) GetOrCreate(ctx context.Context, userID int) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.getorcreate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	p, err := r.get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO profile (user_id, level)
		VALUES ($1, $2)
	`, userID, fitness.LevelBeginner)
	if err != nil && !pkg.IsUniqueViolationError(err) {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	return r.get(ctx, userID)
}

func (r *Repo) get(ctx context.Context, userID int) (*Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM profile
		WHERE user_id = $1
	`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update writes the editable fields. Lifetime totals are never written here,
// they only change through the atomic increments below.
func (r *Repo) Update(ctx context.Context, p *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.update")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE profile
		SET age = $2, date_of_birth = $3, gender = $4, height = $5, weight = $6, level = $7
		WHERE user_id = $1
	`,
		p.UserID,
		p.Age, p.DateOfBirth, p.Gender, p.Height, p.Weight,
		p.Level,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementWorkouts atomically adds one to the lifetime workout count.
func (r *Repo) IncrementWorkouts(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.incrementworkouts")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE profile
		SET total_workouts = total_workouts + 1
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("increment workouts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddExercise atomically adds exercise seconds and one workout to the lifetime
// totals and returns the updated profile.
func (r *Repo) AddExercise(ctx context.Context, userID int, seconds int64) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.addexercise")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	p, err := scanProfile(r.db.QueryRow(ctx, `
		UPDATE profile
		SET total_exercise_time = total_exercise_time + $2,
		    total_workouts      = total_workouts + 1
		WHERE user_id = $1
		RETURNING `+selectColumns,
		userID, seconds,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*Profile, error) {
	p := &Profile{}
	if err := row.Scan(
		&p.UserID,
		&p.Age, &p.DateOfBirth, &p.Gender, &p.Height, &p.Weight,
		&p.Level,
		&p.TotalExerciseTime, &p.TotalWorkouts,
	); err != nil {
		return nil, err
	}
	return p, nil
}
