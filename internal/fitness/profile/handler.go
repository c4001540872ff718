package profile

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/pkg"
)

type profileEditor interface {
	Get(ctx context.Context, userID int) (*Profile, error)
	Save(ctx context.Context, userID int, upd Update) (*Profile, error)
}

type accountsGetter interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type Goals struct {
	WeeklyWorkouts int `json:"weekly_workouts"`
	TargetCalories int `json:"target_calories"`
}

var DefaultGoals = Goals{
	WeeklyWorkouts: 5,
	TargetCalories: 2000,
}

type SummaryResponse struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	TotalExerciseTime int64  `json:"total_exercise_time"`
	TotalWorkouts     int    `json:"total_workouts"`
	Goals             Goals  `json:"goals"`
}

type View struct {
	Username    string        `json:"username"`
	Email       string        `json:"email"`
	DateOfBirth *string       `json:"date_of_birth"`
	Age         *int          `json:"age"`
	Weight      *float64      `json:"weight"`
	Height      *float64      `json:"height"`
	Gender      *string       `json:"gender"`
	Level       fitness.Level `json:"level"`
}

type SaveResponse struct {
	Message string `json:"message"`
	Profile View   `json:"profile"`
}

type Handler struct {
	editor         profileEditor
	accounts       accountsGetter
	metricsManager *metrics.Manager
}

func NewHandler(editor profileEditor, accounts accountsGetter, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		editor:         editor,
		accounts:       accounts,
		metricsManager: metricsManager,
	}
}

func newView(u *users.User, p *Profile) View {
	v := View{
		Username: u.Username,
		Email:    u.Email,
		Age:      p.Age,
		Weight:   p.Weight,
		Height:   p.Height,
		Gender:   p.Gender,
		Level:    p.Level,
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.Format(time.DateOnly)
		v.DateOfBirth = &dob
	}
	return v
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.summary")
	defer span.End()

	u, p, ok := handler.load(ctx, w)
	if !ok {
		span.SetStatus(codes.Error, "load failed")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SummaryResponse{
		Username:          u.Username,
		Email:             u.Email,
		TotalExerciseTime: p.TotalExerciseTime,
		TotalWorkouts:     p.TotalWorkouts,
		Goals:             DefaultGoals,
	})
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	u, p, ok := handler.load(ctx, w)
	if !ok {
		span.SetStatus(codes.Error, "load failed")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, newView(u, p))
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.save")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var upd Update
	if err := fitness.DecodeJSON(r.Body, &upd); err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.writeValidationError(w, err)
		return
	}

	u, err := handler.accounts.Get(ctx, session.UserID)
	if err != nil {
		log.Errorf("save profile [%d], get user: %s", session.UserID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	p, err := handler.editor.Save(ctx, session.UserID, upd)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if handler.writeValidationError(w, err) {
			return
		}
		log.Errorf("save profile [%d]: %s", session.UserID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SaveResponse{
		Message: "Profile saved successfully",
		Profile: newView(u, p),
	})
}

func (handler *Handler) load(ctx context.Context, w http.ResponseWriter) (*users.User, *Profile, bool) {
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return nil, nil, false
	}

	u, err := handler.accounts.Get(ctx, session.UserID)
	if err != nil {
		log.Errorf("get profile [%d], get user: %s", session.UserID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to get profile")
		return nil, nil, false
	}

	p, err := handler.editor.Get(ctx, session.UserID)
	if err != nil {
		log.Errorf("get profile [%d]: %s", session.UserID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to get profile")
		return nil, nil, false
	}

	return u, p, true
}

// writeValidationError writes a 400 for validation errors and reports whether it did.
func (handler *Handler) writeValidationError(w http.ResponseWriter, err error) bool {
	validationErr, ok := fitness.AsValidationError(err)
	if !ok {
		return false
	}
	handler.metricsManager.CounterValidationErrors.WithLabelValues(validationErr.Field).Inc()
	pkg.WriteJSONError(w, http.StatusBadRequest, validationErr.Error())
	return true
}
