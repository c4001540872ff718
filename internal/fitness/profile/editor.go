package profile

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/fitness/dailystats"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=editor_mocks_test.go -package=profile_test

type profilesRepo interface {
	GetOrCreate(ctx context.Context, userID int) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
}

type dailyStatsRepo interface {
	GetOrCreate(ctx context.Context, userID int, day time.Time) (*dailystats.DailyStats, error)
	SetWeight(ctx context.Context, userID int, day time.Time, weight float64) error
}

// Update is a partial profile update. Absent fields leave the stored value as is.
type Update struct {
	DateOfBirth fitness.Field `json:"date_of_birth"`
	Age         fitness.Field `json:"age"`
	Weight      fitness.Field `json:"weight"`
	Height      fitness.Field `json:"height"`
	Gender      fitness.Field `json:"gender"`
	Level       fitness.Field `json:"level"`
}

type Editor struct {
	profiles profilesRepo
	stats    dailyStatsRepo
	calendar fitness.Calendar
}

func NewEditor(profiles profilesRepo, stats dailyStatsRepo, calendar fitness.Calendar) *Editor {
	return &Editor{
		profiles: profiles,
		stats:    stats,
		calendar: calendar,
	}
}

// Get returns the user's profile, creating it if missing.
func (e *Editor) Get(ctx context.Context, userID int) (*Profile, error) {
	return e.profiles.GetOrCreate(ctx, userID)
}

// Save merges the update into the stored profile. All input is validated before
// anything is written, so a *fitness.ValidationError leaves the profile untouched.
func (e *Editor) Save(ctx context.Context, userID int, upd Update) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.save")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	today := e.calendar.Today()

	p, err := e.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if upd.DateOfBirth.Present {
		dob, err := parseDateOfBirth(upd.DateOfBirth, today)
		if err != nil {
			return nil, err
		}
		p.DateOfBirth = dob
	}

	if !upd.Age.Blank() {
		age, err := upd.Age.NonNegativeInt("age")
		if err != nil {
			return nil, err
		}
		a := int(age)
		p.Age = &a
	} else if p.DateOfBirth != nil {
		a := fitness.AgeAt(*p.DateOfBirth, today)
		p.Age = &a
	}

	var mirrorWeight *float64
	if upd.Weight.Present {
		p.Weight = nil
		if w, ok := upd.Weight.Float(); ok {
			p.Weight = &w
			mirrorWeight = &w
		} else if !upd.Weight.Blank() {
			log.Debugf("save profile [%d]: weight %q is not a number, daily stats not updated", userID, upd.Weight.Raw)
		}
	}

	if upd.Height.Present {
		p.Height = nil
		if h, ok := upd.Height.Float(); ok {
			p.Height = &h
		}
	}

	if upd.Gender.Present {
		p.Gender = nil
		if !upd.Gender.Null {
			g := upd.Gender.Raw
			p.Gender = &g
		}
	}

	if upd.Level.Present {
		p.Level = fitness.NormalizeLevel(upd.Level.Raw)
	}

	if err := e.profiles.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if mirrorWeight != nil {
		if _, err := e.stats.GetOrCreate(ctx, userID, today); err != nil {
			return nil, fmt.Errorf("get today stats: %w", err)
		}
		if err := e.stats.SetWeight(ctx, userID, today, *mirrorWeight); err != nil {
			return nil, fmt.Errorf("mirror weight: %w", err)
		}
	}

	return p, nil
}

func parseDateOfBirth(f fitness.Field, today time.Time) (*time.Time, error) {
	if f.Blank() {
		return nil, nil
	}
	dob, err := time.Parse(time.DateOnly, f.Value())
	if err != nil {
		return nil, fitness.NewValidationError("date_of_birth", "invalid date %q, expected YYYY-MM-DD", f.Value())
	}
	if dob.After(today) {
		return nil, fitness.NewValidationError("date_of_birth", "cannot be in the future")
	}
	return &dob, nil
}
