package activity

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

type activityLogger interface {
	LogActivity(ctx context.Context, userID int, raw fitness.Field) (int64, error)
}

type LogActivityRequest struct {
	Seconds fitness.Field `json:"seconds"`
}

type LogActivityResponse struct {
	Message string `json:"message"`
	Seconds int64  `json:"seconds"`
}

type Handler struct {
	service        activityLogger
	metricsManager *metrics.Manager
}

func NewHandler(service activityLogger, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activity.log")
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

	var req LogActivityRequest
	err := fitness.DecodeJSON(r.Body, &req)
	var seconds int64
	if err == nil {
		seconds, err = handler.service.LogActivity(ctx, session.UserID, req.Seconds)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if validationErr, ok := fitness.AsValidationError(err); ok {
			handler.metricsManager.CounterValidationErrors.WithLabelValues(validationErr.Field).Inc()
			pkg.WriteJSONError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		log.Errorf("log activity [%d]: %s", session.UserID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to log activity")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, LogActivityResponse{
		Message: "Activity logged successfully",
		Seconds: seconds,
	})
}
