package videos

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/fitness/profile"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

type profileGetter interface {
	Get(ctx context.Context, userID int) (*profile.Profile, error)
}

type Handler struct {
	catalog  *Catalog
	profiles profileGetter
}

func NewHandler(catalog *Catalog, profiles profileGetter) *Handler {
	return &Handler{
		catalog:  catalog,
		profiles: profiles,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.videos.list")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	p, err := handler.profiles.Get(ctx, session.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("list videos [%d], get profile: %s", session.UserID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to get videos")
		return
	}
	span.SetAttributes(attribute.String("level", p.Level.String()))

	rendered, err := handler.catalog.JSONForLevel(p.Level)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("list videos [%d]: %s", session.UserID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to get videos")
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, rendered)
}
