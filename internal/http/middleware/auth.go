package middleware

import (
	"context"
	"io"
	"net/http"
	"strings"

	"beexpress/internal/logx"
)

// CallerHeader carries the opaque subject set by the identity-provider
// proxy in front of the service.
const CallerHeader = "X-Caller-Id"

type callerKey struct{}

// CallerID returns the authenticated caller identity from the request
// context, or "" when the request was not authenticated.
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(callerKey{}).(string)
	return id
}

// WithCaller attaches a caller identity to the context. Exposed for tests.
func WithCaller(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, callerKey{}, callerID)
}

// Auth extracts the caller identity and rejects anonymous requests with 401.
func Auth(logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerID := strings.TrimSpace(r.Header.Get(CallerHeader))
			if callerID == "" {
				logger.Warn("unauthenticated request",
					logx.String("method", r.Method),
					logx.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				if _, err := io.WriteString(w, `{"error":"unauthorized"}`); err != nil {
					logger.Debug("auth response write failed", logx.Any("err", err))
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), callerID)))
		})
	}
}
