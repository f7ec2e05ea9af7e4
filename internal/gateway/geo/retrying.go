package geo

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"beexpress/internal/domain"
	"beexpress/internal/logx"
)

type distancer interface {
	RouteDistanceKm(ctx context.Context, origin, dest domain.Coordinates) (float64, error)
}

type counter interface {
	Inc()
}

// RetryConfig описывает поведение RetryingGateway
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries transient mapping-service failures with
// exponential backoff. Business outcomes like ErrNoRoute pass straight
// through.
type RetryingGateway struct {
	next    distancer
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway creates the retrying decorator; next must not be nil.
func NewRetryingGateway(next distancer, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// RouteDistanceKm fetches a route distance, retrying retryable failures.
func (g *RetryingGateway) RouteDistanceKm(ctx context.Context, origin, dest domain.Coordinates) (float64, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		km, err := g.next.RouteDistanceKm(ctx, origin, dest)
		if err == nil {
			return km, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("geo gateway retry",
			logx.String("method", "RouteDistanceKm"),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return 0, lastErr
}

// isRetryable определяет, является ли ошибка повторяемой
func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
