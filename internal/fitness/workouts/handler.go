package workouts

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/fitness/profile"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

type workoutsService interface {
	CompleteWorkout(ctx context.Context, userID int, raw fitness.Field) (float64, error)
	TrackWorkout(ctx context.Context, userID int, raw fitness.Field) (*profile.Profile, error)
}

type CompleteWorkoutResponse struct {
	Message       string  `json:"message"`
	CaloriesToday float64 `json:"calories_today"`
}

type TrackWorkoutResponse struct {
	Message           string `json:"message"`
	TotalExerciseTime int64  `json:"total_exercise_time"`
	TotalWorkouts     int    `json:"total_workouts"`
}

type Handler struct {
	service        workoutsService
	metricsManager *metrics.Manager
}

func NewHandler(service workoutsService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.complete")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req struct {
		CaloriesBurned fitness.Field `json:"calories_burned"`
	}
	if !handler.decode(w, r, &req) {
		return
	}

	total, err := handler.service.CompleteWorkout(ctx, session.UserID, req.CaloriesBurned)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.writeError(w, err, "complete workout", session.UserID)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, CompleteWorkoutResponse{
		Message:       "Workout completed successfully",
		CaloriesToday: total,
	})
}

func (handler *Handler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.track")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req struct {
		ExerciseTime fitness.Field `json:"exercise_time"`
	}
	if !handler.decode(w, r, &req) {
		return
	}

	p, err := handler.service.TrackWorkout(ctx, session.UserID, req.ExerciseTime)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.writeError(w, err, "track workout", session.UserID)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, TrackWorkoutResponse{
		Message:           "Workout tracked successfully",
		TotalExerciseTime: p.TotalExerciseTime,
		TotalWorkouts:     p.TotalWorkouts,
	})
}

func (handler *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := fitness.DecodeJSON(r.Body, v); err != nil {
		log.Debugf("%s, decode json params: %s", r.URL.Path, err)
		handler.writeError(w, err, "decode request", 0)
		return false
	}
	return true
}

func (handler *Handler) writeError(w http.ResponseWriter, err error, op string, userID int) {
	if validationErr, ok := fitness.AsValidationError(err); ok {
		handler.metricsManager.CounterValidationErrors.WithLabelValues(validationErr.Field).Inc()
		pkg.WriteJSONError(w, http.StatusBadRequest, validationErr.Error())
		return
	}
	log.Errorf("%s [%d]: %s", op, userID, err)
	pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to "+op)
}
