package dashboard

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

type dashboardGetter interface {
	Get(ctx context.Context, userID int) (*Dashboard, error)
}

type Handler struct {
	aggregator dashboardGetter
}

func NewHandler(aggregator dashboardGetter) *Handler {
	return &Handler{
		aggregator: aggregator,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.get")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	d, err := handler.aggregator.Get(ctx, session.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get dashboard [%d]: %s", session.UserID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to get dashboard")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, d)
}
