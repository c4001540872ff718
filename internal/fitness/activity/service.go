package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/fitness/dailystats"
	"github.com/2beens/fittrack/internal/fitness/sessions"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
)

type sessionsRepo interface {
	Create(ctx context.Context, session sessions.SessionActivity) (*sessions.SessionActivity, error)
	FindOpen(ctx context.Context, userID int, sessionID string) (*sessions.SessionActivity, error)
	Close(ctx context.Context, id int, logoutTime time.Time, durationSeconds int64) (bool, error)
}

type dailyStatsRepo interface {
	GetOrCreate(ctx context.Context, userID int, day time.Time) (*dailystats.DailyStats, error)
	AddTimeSpent(ctx context.Context, userID int, day time.Time, seconds int64) error
}

// Service rolls session and explicit activity time up into the per day stats.
type Service struct {
	sessions       sessionsRepo
	stats          dailyStatsRepo
	calendar       fitness.Calendar
	metricsManager *metrics.Manager
}

func NewService(
	sessions sessionsRepo,
	stats dailyStatsRepo,
	calendar fitness.Calendar,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		sessions:       sessions,
		stats:          stats,
		calendar:       calendar,
		metricsManager: metricsManager,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// OnLogin opens a session activity record. Daily stats are not touched until logout.
func (s *Service) OnLogin(ctx context.Context, userID int, sessionID string) (_ *sessions.SessionActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.onlogin")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID))

	now := s.calendar.Now()
	if sessionID == "" {
		sessionID = fmt.Sprintf("login-%d", now.UnixNano())
	}

	session, err := s.sessions.Create(ctx, sessions.SessionActivity{
		UserID:    userID,
		SessionID: sessionID,
		LoginTime: now,
		Date:      fitness.Day(now, s.calendar.Location),
	})
	if err != nil {
		return nil, fmt.Errorf("create session activity: %w", err)
	}

	return session, nil
}

// OnLogout closes the user's open session and adds its duration to the stats of
// the day the session started. Without an open session it does nothing and
// returns nil.
func (s *Service) OnLogout(ctx context.Context, userID int, sessionID string) (_ *sessions.SessionActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.onlogout")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID))

	session, err := s.sessions.FindOpen(ctx, userID, sessionID)
	if errors.Is(err, sessions.ErrNotFound) {
		log.Debugf("logout [%d]: no open session, nothing to roll up", userID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find open session: %w", err)
	}

	now := s.calendar.Now()
	duration := int64(now.Sub(session.LoginTime) / time.Second)
	if duration < 0 {
		duration = 0
	}

	closed, err := s.sessions.Close(ctx, session.ID, now, duration)
	if err != nil {
		return nil, fmt.Errorf("close session %d: %w", session.ID, err)
	}
	if !closed {
		// a concurrent logout closed it first and did the rollup
		span.AddEvent("already-closed")
		return nil, nil
	}

	session.LogoutTime = &now
	session.DurationSeconds = duration
	span.SetAttributes(attribute.Int64("session.duration", duration))

	if err := s.addTimeSpent(ctx, userID, session.Date, duration); err != nil {
		return nil, err
	}

	return session, nil
}

// LogActivity adds explicitly reported seconds to today's stats and returns the
// accepted amount. Anything but a positive whole number is rejected untouched.
func (s *Service) LogActivity(ctx context.Context, userID int, raw fitness.Field) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.log")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID))

	seconds, err := raw.PositiveInt("seconds")
	if err != nil {
		return 0, err
	}

	if err := s.addTimeSpent(ctx, userID, s.calendar.Today(), seconds); err != nil {
		return 0, err
	}

	return seconds, nil
}

func (s *Service) addTimeSpent(ctx context.Context, userID int, day time.Time, seconds int64) error {
	if _, err := s.stats.GetOrCreate(ctx, userID, day); err != nil {
		return fmt.Errorf("get daily stats: %w", err)
	}
	if err := s.stats.AddTimeSpent(ctx, userID, day, seconds); err != nil {
		return fmt.Errorf("add time spent: %w", err)
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterActivitySeconds.Add(float64(seconds))
	}
	return nil
}
