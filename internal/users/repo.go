package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

const (
	usernameConstraint = "ux_app_user_username"
	emailConstraint    = "ux_app_user_email"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts the user together with its empty profile in one transaction.
func (r *Repo) Create(ctx context.Context, u *User, seed ProfileSeed) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Errorf("create user, rollback: %s", err)
		}
	}()

	created := *u
	if err := tx.QueryRow(ctx, `
		INSERT INTO app_user (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, u.Username, u.Email, u.PasswordHash).Scan(&created.ID, &created.CreatedAt); err != nil {
		if pkg.IsUniqueViolationError(err) {
			switch pkg.ViolatedConstraint(err) {
			case usernameConstraint:
				return nil, ErrUsernameTaken
			case emailConstraint:
				return nil, ErrEmailTaken
			}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO profile (user_id, gender, weight)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`, created.ID, seed.Gender, seed.Weight); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", created.ID))
	return &created, nil
}

func (r *Repo) Get(ctx context.Context, id int) (*User, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer span.End()

	return r.getBy(ctx, "id", id)
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*User, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyusername")
	defer span.End()

	return r.getBy(ctx, "username", username)
}

func (r *Repo) getBy(ctx context.Context, column string, value any) (*User, error) {
	var u User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM app_user
		WHERE `+column+` = $1
	`, value).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	return &u, nil
}
