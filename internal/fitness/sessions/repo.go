package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

const selectColumns = `id, user_id, session_id, login_time, logout_time, duration_seconds, date`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts a new session row. If a row for the same (user, session id)
// already exists, the existing row is returned instead.
func (r *Repo) Create(ctx context.Context, session SessionActivity) (_ *SessionActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.create")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int("user.id", session.UserID))

	err = r.db.QueryRow(ctx, `
		INSERT INTO session_activity (user_id, session_id, login_time, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		session.UserID,
		session.SessionID,
		session.LoginTime,
		session.Date,
	).Scan(&session.ID)
	if err == nil {
		return &session, nil
	}
	if !pkg.IsUniqueViolationError(err) {
		return nil, fmt.Errorf("insert session activity: %w", err)
	}

	span.AddEvent("concurrent-create")
	existing, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM session_activity
		WHERE user_id = $1 AND session_id = $2
	`, session.UserID, session.SessionID))
	if err != nil {
		return nil, fmt.Errorf("get existing session activity: %w", err)
	}
	return existing, nil
}

// FindOpen returns the open session with the given session id if there is one,
// otherwise the most recently opened session of the user. ErrNotFound if the
// user has no open sessions.
func (r *Repo) FindOpen(ctx context.Context, userID int, sessionID string) (_ *SessionActivity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.findopen")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	session, err := scanSession(r.db.QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM session_activity
		WHERE user_id = $1 AND logout_time IS NULL
		ORDER BY (session_id = $2) DESC, login_time DESC, id DESC
		LIMIT 1
	`, userID, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find open session: %w", err)
	}
	return session, nil
}

// Close sets the logout time and duration of an open session. It reports false
// if the session was already closed by someone else.
func (r *Repo) Close(ctx context.Context, id int, logoutTime time.Time, durationSeconds int64) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.close")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE session_activity
		SET logout_time = $2, duration_seconds = $3
		WHERE id = $1 AND logout_time IS NULL
	`, id, logoutTime, durationSeconds)
	if err != nil {
		return false, fmt.Errorf("close session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanSession(row pgx.Row) (*SessionActivity, error) {
	s := &SessionActivity{}
	if err := row.Scan(
		&s.ID, &s.UserID, &s.SessionID,
		&s.LoginTime, &s.LogoutTime, &s.DurationSeconds,
		&s.Date,
	); err != nil {
		return nil, err
	}
	return s, nil
}
