package fitness

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Level is the canonical fitness level of a user.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) String() string {
	return string(l)
}

// NormalizeLevel maps any user supplied level representation to a canonical Level.
// Unknown or empty values fall back to beginner.
func NormalizeLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "beginner":
		return LevelBeginner
	case "2", "intermediate":
		return LevelIntermediate
	case "3", "advanced":
		return LevelAdvanced
	default:
		return LevelBeginner
	}
}

// ValidationError is returned for malformed or out of range input. No state is
// mutated when an operation returns it.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

// Day truncates t to its calendar day in loc. The result is midnight UTC of that
// day, which is how pgx scans SQL DATE values.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Calendar knows the time zone calendar days are computed in.
type Calendar struct {
	Now      Clock
	Location *time.Location
}

func NewCalendar(now Clock, loc *time.Location) Calendar {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{
		Now:      now,
		Location: loc,
	}
}

func (c Calendar) Today() time.Time {
	return Day(c.Now(), c.Location)
}

// AgeAt computes the age in full years of someone born on dob at the given day.
func AgeAt(dob, day time.Time) int {
	age := day.Year() - dob.Year()
	if day.Month() < dob.Month() || (day.Month() == dob.Month() && day.Day() < dob.Day()) {
		age--
	}
	return age
}

// AsValidationError unwraps a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}
