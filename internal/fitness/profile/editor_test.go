package profile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/fitness/dailystats"
	"github.com/2beens/fittrack/internal/fitness/profile"
)

func calendarAt(y int, m time.Month, d int) fitness.Calendar {
	return fitness.NewCalendar(func() time.Time {
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	}, time.UTC)
}

func newMemoryEditor(cal fitness.Calendar) (*profile.Editor, *profile.MemoryRepo, *dailystats.MemoryRepo) {
	profiles := profile.NewMemoryRepo()
	stats := dailystats.NewMemoryRepo()
	return profile.NewEditor(profiles, stats, cal), profiles, stats
}

func TestEditor_Save_FutureDateOfBirth(t *testing.T) {
	editor, profiles, _ := newMemoryEditor(calendarAt(2024, time.June, 14))
	ctx := context.Background()

	dob := time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC)
	profiles.Put(profile.Profile{UserID: 1, DateOfBirth: &dob, Level: fitness.LevelBeginner})

	p, err := editor.Save(ctx, 1, profile.Update{
		DateOfBirth: fitness.FieldOf("2099-01-01"),
		Weight:      fitness.FieldOf("80"),
	})
	assert.Nil(t, p)
	validationErr, ok := fitness.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "date_of_birth: cannot be in the future", validationErr.Error())

	stored, err := profiles.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stored.DateOfBirth)
	assert.Equal(t, dob, *stored.DateOfBirth)
	assert.Nil(t, stored.Weight)
	assert.Zero(t, profiles.UpdateCount)
}

func TestEditor_Save_DerivesAge(t *testing.T) {
	testCases := []struct {
		name        string
		calendar    fitness.Calendar
		expectedAge int
	}{
		{name: "DayBeforeBirthday", calendar: calendarAt(2024, time.June, 14), expectedAge: 23},
		{name: "OnBirthday", calendar: calendarAt(2024, time.June, 15), expectedAge: 24},
		{name: "DayAfterBirthday", calendar: calendarAt(2024, time.June, 16), expectedAge: 24},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			editor, _, _ := newMemoryEditor(tc.calendar)

			p, err := editor.Save(context.Background(), 1, profile.Update{
				DateOfBirth: fitness.FieldOf("2000-06-15"),
			})
			require.NoError(t, err)
			require.NotNil(t, p.Age)
			assert.Equal(t, tc.expectedAge, *p.Age)
			require.NotNil(t, p.DateOfBirth)
			assert.Equal(t, "2000-06-15", p.DateOfBirth.Format(time.DateOnly))
		})
	}
}

func TestEditor_Save_Age(t *testing.T) {
	editor, profiles, _ := newMemoryEditor(calendarAt(2024, time.June, 14))
	ctx := context.Background()

	// explicit age wins over the derived one
	p, err := editor.Save(ctx, 1, profile.Update{
		DateOfBirth: fitness.FieldOf("2000-06-15"),
		Age:         fitness.FieldOf("30"),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, *p.Age)

	// neither age nor dob in the request, dob is stored, so age is derived again
	p, err = editor.Save(ctx, 1, profile.Update{Gender: fitness.FieldOf("male")})
	require.NoError(t, err)
	assert.Equal(t, 23, *p.Age)

	// clearing dob with no age leaves the age as is
	p, err = editor.Save(ctx, 1, profile.Update{DateOfBirth: fitness.FieldOf("")})
	require.NoError(t, err)
	assert.Nil(t, p.DateOfBirth)
	assert.Equal(t, 23, *p.Age)

	for _, raw := range []string{"-1", "old", "2.5"} {
		_, err = editor.Save(ctx, 1, profile.Update{Age: fitness.FieldOf(raw)})
		validationErr, ok := fitness.AsValidationError(err)
		require.True(t, ok, raw)
		assert.Equal(t, "age", validationErr.Field)
	}

	stored, err := profiles.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 23, *stored.Age)
}

func TestEditor_Save_InvalidDateOfBirth(t *testing.T) {
	editor, _, _ := newMemoryEditor(calendarAt(2024, time.June, 14))

	_, err := editor.Save(context.Background(), 1, profile.Update{DateOfBirth: fitness.FieldOf("15/06/2000")})
	require.Error(t, err)
	assert.Equal(t, `date_of_birth: invalid date "15/06/2000", expected YYYY-MM-DD`, err.Error())
}

func TestEditor_Save_MirrorsWeight(t *testing.T) {
	editor, profiles, stats := newMemoryEditor(calendarAt(2024, time.June, 14))
	ctx := context.Background()
	today := time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)

	p, err := editor.Save(ctx, 1, profile.Update{
		Weight: fitness.FieldOf("72.5"),
		Height: fitness.FieldOf("180"),
	})
	require.NoError(t, err)
	assert.Equal(t, 72.5, *p.Weight)
	assert.Equal(t, 180.0, *p.Height)

	row, err := stats.GetOrCreate(ctx, 1, today)
	require.NoError(t, err)
	require.NotNil(t, row.Weight)
	assert.Equal(t, 72.5, *row.Weight)

	// unparsable weight is stored as null and the mirror is skipped
	p, err = editor.Save(ctx, 1, profile.Update{Weight: fitness.FieldOf("heavy")})
	require.NoError(t, err)
	assert.Nil(t, p.Weight)
	row, err = stats.GetOrCreate(ctx, 1, today)
	require.NoError(t, err)
	assert.Equal(t, 72.5, *row.Weight)

	// null clears without mirroring
	p, err = editor.Save(ctx, 1, profile.Update{Weight: fitness.NullField(), Height: fitness.NullField()})
	require.NoError(t, err)
	assert.Nil(t, p.Weight)
	assert.Nil(t, p.Height)
	assert.Equal(t, 1, stats.CreateCount)

	stored, err := profiles.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stored.Weight)
}

func TestEditor_Save_LevelAndGender(t *testing.T) {
	editor, _, _ := newMemoryEditor(calendarAt(2024, time.June, 14))
	ctx := context.Background()

	p, err := editor.Save(ctx, 1, profile.Update{Level: fitness.FieldOf(" 3 "), Gender: fitness.FieldOf("female")})
	require.NoError(t, err)
	assert.Equal(t, fitness.LevelAdvanced, p.Level)
	assert.Equal(t, "female", *p.Gender)

	// absent level is left alone
	p, err = editor.Save(ctx, 1, profile.Update{Gender: fitness.NullField()})
	require.NoError(t, err)
	assert.Equal(t, fitness.LevelAdvanced, p.Level)
	assert.Nil(t, p.Gender)

	p, err = editor.Save(ctx, 1, profile.Update{Level: fitness.FieldOf("elite")})
	require.NoError(t, err)
	assert.Equal(t, fitness.LevelBeginner, p.Level)

	p, err = editor.Save(ctx, 1, profile.Update{Level: fitness.NullField()})
	require.NoError(t, err)
	assert.Equal(t, fitness.LevelBeginner, p.Level)
}

func TestEditor_Save_ValidationFailsBeforeAnyWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := NewMockprofilesRepo(ctrl)
	stats := NewMockdailyStatsRepo(ctrl)
	editor := profile.NewEditor(profiles, stats, calendarAt(2024, time.June, 14))

	profiles.EXPECT().GetOrCreate(gomock.Any(), 1).Return(profile.NewDefault(1), nil)
	// no Update, no GetOrCreate on stats and no SetWeight expected

	_, err := editor.Save(context.Background(), 1, profile.Update{
		Weight: fitness.FieldOf("70"),
		Age:    fitness.FieldOf("-4"),
	})
	_, ok := fitness.AsValidationError(err)
	assert.True(t, ok)
}

func TestEditor_Save_StorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := NewMockprofilesRepo(ctrl)
	stats := NewMockdailyStatsRepo(ctrl)
	editor := profile.NewEditor(profiles, stats, calendarAt(2024, time.June, 14))
	today := time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)
	boom := errors.New("boom")

	gomock.InOrder(
		profiles.EXPECT().GetOrCreate(gomock.Any(), 1).Return(profile.NewDefault(1), nil),
		profiles.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
		stats.EXPECT().GetOrCreate(gomock.Any(), 1, today).Return(&dailystats.DailyStats{UserID: 1, Date: today}, nil),
		stats.EXPECT().SetWeight(gomock.Any(), 1, today, 70.0).Return(boom),
	)

	_, err := editor.Save(context.Background(), 1, profile.Update{Weight: fitness.FieldOf("70")})
	assert.ErrorIs(t, err, boom)
	_, ok := fitness.AsValidationError(err)
	assert.False(t, ok)
}
