package users

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/pkg"
)

type usersRepo interface {
	Create(ctx context.Context, u *User, seed ProfileSeed) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Registration struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`

	Gender fitness.Field `json:"gender" validate:"-"`
	Weight fitness.Field `json:"weight" validate:"-"`
}

type Service struct {
	repo     usersRepo
	validate *validator.Validate
	// password hashing is injectable, bcrypt at the default cost is slow in tests
	HashFunc func(password string) (string, error)
}

func NewService(repo usersRepo) *Service {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		return name
	})

	return &Service{
		repo:     repo,
		validate: validate,
		HashFunc: pkg.HashPassword,
	}
}

// Register creates the user and its empty profile. Returns ErrUsernameTaken or
// ErrEmailTaken on conflicts and a *fitness.ValidationError on bad input.
func (s *Service) Register(ctx context.Context, reg Registration) (*User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))

	if err := s.validate.StructCtx(ctx, reg); err != nil {
		return nil, toValidationError(err)
	}

	hash, err := s.HashFunc(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
	}, seedOf(reg))
}

// seedOf keeps the optional profile fields. A weight that is not a number is dropped.
func seedOf(reg Registration) ProfileSeed {
	var seed ProfileSeed
	if !reg.Gender.Blank() {
		g := reg.Gender.Value()
		seed.Gender = &g
	}
	if w, ok := reg.Weight.Float(); ok && w >= 0 {
		seed.Weight = &w
	}
	return seed
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !pkg.CheckPasswordHash(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id int) (*User, error) {
	return s.repo.Get(ctx, id)
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fitness.NewValidationError(fe.Field(), "is required")
	case "email":
		return fitness.NewValidationError(fe.Field(), "is not a valid email address")
	case "min":
		return fitness.NewValidationError(fe.Field(), "must be at least %s characters", fe.Param())
	case "max":
		return fitness.NewValidationError(fe.Field(), "must be at most %s characters", fe.Param())
	default:
		return fitness.NewValidationError(fe.Field(), "is invalid")
	}
}
