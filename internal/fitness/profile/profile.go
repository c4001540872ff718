package profile

import (
	"time"

	"github.com/2beens/fittrack/internal/fitness"
)

// Profile holds the demographics, fitness level and lifetime totals of one user.
// Every user has exactly one; readers create it on first access.
type Profile struct {
	UserID            int           `json:"userId"`
	Age               *int          `json:"age"`
	DateOfBirth       *time.Time    `json:"dateOfBirth"`
	Gender            *string       `json:"gender"`
	Height            *float64      `json:"height"`
	Weight            *float64      `json:"weight"`
	Level             fitness.Level `json:"level"`
	TotalExerciseTime int64         `json:"totalExerciseTime"` // seconds
	TotalWorkouts     int           `json:"totalWorkouts"`
}

func NewDefault(userID int) *Profile {
	return &Profile{
		UserID: userID,
		Level:  fitness.LevelBeginner,
	}
}
