package ratelimit

import (
	"io"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"beexpress/internal/logx"
)

// KeyFunc extracts the rate-limit key for a request.
type KeyFunc func(r *http.Request) string

// Middleware ограничивает количество запросов на один ключ
type Middleware struct {
	logger  logx.Logger
	counter prometheus.Counter
	limiter Limiter
	keyFn   KeyFunc
}

// New создает новый Middleware. When keyFn is nil the client IP is used.
func New(logger logx.Logger, counter prometheus.Counter, limiter Limiter, keyFn KeyFunc) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	if keyFn == nil {
		keyFn = ClientIP
	}
	return &Middleware{
		logger:  logger,
		counter: counter,
		limiter: limiter,
		keyFn:   keyFn,
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := m.keyFn(r)

			if !m.limiter.Allow(key) {
				if m.counter != nil {
					m.counter.Inc()
				}
				m.logger.Warn("rate limit exceeded",
					logx.String("key", key),
					logx.String("method", r.Method),
					logx.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				if _, err := io.WriteString(w, `{"error":"too many requests"}`); err != nil {
					// клиент мог оборвать соединение; это не ошибка бизнес-логики
					m.logger.Debug("rate limit response write failed",
						logx.String("key", key),
						logx.Any("err", err),
					)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the remote host for use as a rate-limit key.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
