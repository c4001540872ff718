package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/2beens/fittrack/internal/telemetry/metrics"
)

type fakeRateLimiter struct {
	allowed int
	err     error
	keys    []string
}

func (f *fakeRateLimiter) Allow(_ context.Context, key string, _ redis_rate.Limit) (*redis_rate.Result, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	return &redis_rate.Result{Allowed: f.allowed, RetryAfter: 2 * time.Second}, nil
}

func TestRateLimit(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	limiter := &fakeRateLimiter{allowed: 1}
	req := httptest.NewRequest("POST", "/a/login", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	rr := httptest.NewRecorder()
	RateLimit(limiter, "login", 15, metricsManager)(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"login:10.0.0.7"}, limiter.keys)

	limiter = &fakeRateLimiter{allowed: 0}
	rr = httptest.NewRecorder()
	RateLimit(limiter, "login", 15, metricsManager)(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))

	limiter = &fakeRateLimiter{err: errors.New("redis down")}
	rr = httptest.NewRecorder()
	RateLimit(limiter, "login", 15, metricsManager)(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
