package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/fitness"
	"github.com/2beens/fittrack/internal/fitness/sessions"
	"github.com/2beens/fittrack/internal/middleware"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=users_test

type accountsService interface {
	Register(ctx context.Context, reg Registration) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
}

type authService interface {
	Login(ctx context.Context, userID int, username string, createdAt time.Time) (*auth.Session, error)
	Logout(ctx context.Context, token string) (*auth.Session, error)
}

type activityTracker interface {
	OnLogin(ctx context.Context, userID int, sessionID string) (*sessions.SessionActivity, error)
	OnLogout(ctx context.Context, userID int, sessionID string) (*sessions.SessionActivity, error)
}

type LoginResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	accounts       accountsService
	authService    authService
	activity       activityTracker
	metricsManager *metrics.Manager
}

func NewHandler(
	accounts accountsService,
	authService authService,
	activity activityTracker,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		accounts:       accounts,
		authService:    authService,
		activity:       activity,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
) {
	registerSubrouter := mainRouter.PathPrefix("/register").Subrouter()
	registerSubrouter.HandleFunc("", handler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	registerSubrouter.Use(middleware.RateLimit(rateLimiter, "register", 10, metricsManager))

	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/login", handler.HandleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", handler.HandleLogout).
		Methods("GET", "POST", "OPTIONS").Name("logout")

	// rate limit the /login and /logout endpoints to prevent abuse
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", 15, metricsManager))
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var reg Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		log.Errorf("register, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := handler.accounts.Register(ctx, reg)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if validationErr, ok := fitness.AsValidationError(err); ok {
			handler.metricsManager.CounterValidationErrors.WithLabelValues(validationErr.Field).Inc()
			pkg.WriteJSONError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) {
			pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("register user [%s]: %s", reg.Username, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	handler.metricsManager.CounterRegistrations.Inc()
	span.SetAttributes(attribute.Int("user.id", user.ID))
	log.Debugf("new user registered: [%d] %s", user.ID, user.Username)

	pkg.WriteJSON(w, http.StatusCreated, MessageResponse{Message: "User created successfully"})
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusBadRequest)
			return
		}
		loginReq = loginRequest{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.accounts.Authenticate(ctx, loginReq.Username, loginReq.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Tracef("failed login attempt for user: %s", loginReq.Username)
			http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
			return
		}
		log.Errorf("login [%s], authenticate: %s", loginReq.Username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	session, err := handler.authService.Login(ctx, user.ID, user.Username, time.Now())
	if err != nil {
		log.Errorf("login failed, create session: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	// the activity log is secondary, a failure here does not fail the login
	if _, err := handler.activity.OnLogin(ctx, user.ID, session.SessionID); err != nil {
		log.Errorf("login [%d], record session activity: %s", user.ID, err)
		span.RecordError(err)
	}

	handler.metricsManager.CounterLogins.Inc()
	span.SetAttributes(attribute.Int("user.id", user.ID))
	log.Tracef("new login success: %d", user.ID)

	pkg.WriteJSON(w, http.StatusOK, LoginResponse{Token: session.Token})
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := auth.TokenFromRequest(r)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	session, err := handler.authService.Logout(ctx, authToken)
	if err != nil {
		if !errors.Is(err, auth.ErrSessionNotFound) {
			log.Errorf("logout failed => %s: %s", r.URL.Path, err)
		}
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	closed, err := handler.activity.OnLogout(ctx, session.UserID, session.SessionID)
	if err != nil {
		log.Errorf("logout [%d], roll up session activity: %s", session.UserID, err)
		span.RecordError(err)
	} else if closed != nil {
		span.SetAttributes(attribute.Int64("session.duration", closed.DurationSeconds))
	}

	handler.metricsManager.CounterLogouts.Inc()
	log.Debugf("logout for user [%d] success", session.UserID)

	pkg.WriteJSON(w, http.StatusOK, MessageResponse{Message: "logged-out"})
}
