package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"beexpress/internal/apperr"
	"beexpress/internal/config"
	"beexpress/internal/domain"
	"beexpress/internal/http/middleware/ratelimit"
	"beexpress/internal/service/users"
	"beexpress/internal/transport/kafka"
)

type stubRegistry struct{ err error }

func (s stubRegistry) Register(context.Context, string, domain.Role, string) error {
	return s.err
}

func TestMakeUsersKafka_InvalidIsPermanent(t *testing.T) {
	t.Parallel()

	h := makeUsersKafka(users.NewProcessor(stubRegistry{err: apperr.ErrInvalid}))

	err := h(context.Background(), users.Event{Type: "user.created", UserID: "user_1", Role: "admin"})
	var perm kafka.PermanentError
	require.ErrorAs(t, err, &perm)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestMakeUsersKafka_TransientIsRetryable(t *testing.T) {
	t.Parallel()

	dbDown := errors.New("connection refused")
	h := makeUsersKafka(users.NewProcessor(stubRegistry{err: dbDown}))

	err := h(context.Background(), users.Event{Type: "user.created", UserID: "user_1", Role: "driver"})
	require.ErrorIs(t, err, dbDown)

	var perm kafka.PermanentError
	require.False(t, errors.As(err, &perm))
}

func TestMakeUsersKafka_Success(t *testing.T) {
	t.Parallel()

	h := makeUsersKafka(users.NewProcessor(stubRegistry{}))
	require.NoError(t, h(context.Background(), users.Event{Type: "user.created", UserID: "user_1", Role: "driver"}))
}

func TestNewRateLimiter_DisabledGivesNop(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{RateLimit: config.RateLimit{Enabled: false}}
	limiter := newRateLimiter(cfg, ratelimit.RealClock{})
	require.IsType(t, ratelimit.NopLimiter{}, limiter)
}

func TestNewRateLimiter_EnabledGivesTokenBucket(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{RateLimit: config.RateLimit{
		Enabled:    true,
		Rate:       10,
		Burst:      20,
		TTL:        time.Minute,
		MaxBuckets: 100,
	}}
	limiter := newRateLimiter(cfg, ratelimit.RealClock{})
	require.IsType(t, &ratelimit.TokenBucketLimiter{}, limiter)
}

func newTestOnlyCounter() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: "app_test_counter_total"})
}

func TestRegisterCounter_ReusesExistingCollector(t *testing.T) {
	t.Parallel()

	first := registerCounter(newTestOnlyCounter())
	second := registerCounter(newTestOnlyCounter())
	require.Same(t, first, second)
}

func TestWorkerRunner_MustRun(t *testing.T) {
	t.Parallel()

	// context cancellation is a clean shutdown
	r := &WorkerRunner{runFn: func(*dig.Container) error { return context.Canceled }}
	require.NotPanics(t, func() { r.MustRun(dig.New()) })

	r = &WorkerRunner{runFn: func(*dig.Container) error { return errors.New("boom") }}
	require.Panics(t, func() { r.MustRun(dig.New()) })
}

func TestContainerBuilder_Builds(t *testing.T) {
	t.Parallel()

	var fatal bool
	fatalf := func(string, ...interface{}) { fatal = true }

	c := NewContainerBuilder().WithLogFatalf(fatalf).MustBuild(context.Background())
	require.NotNil(t, c)
	require.False(t, fatal)

	c = NewContainerBuilder().WithLogFatalf(fatalf).ForWorker().MustBuild(context.Background())
	require.NotNil(t, c)
	require.False(t, fatal)
}
