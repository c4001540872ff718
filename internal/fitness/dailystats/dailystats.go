package dailystats

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("daily stats not found")

// DailyStats aggregates a single user's activity for one calendar day.
// There is at most one row per (UserID, Date).
type DailyStats struct {
	ID             int       `json:"id"`
	UserID         int       `json:"userId"`
	Date           time.Time `json:"date"`
	CaloriesBurned float64   `json:"caloriesBurned"`
	TimeSpentToday int64     `json:"timeSpentToday"` // seconds
	WorkoutsToday  int       `json:"workoutsToday"`
	Weight         *float64  `json:"weight,omitempty"`
}
