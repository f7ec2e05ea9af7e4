package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"beexpress/internal/http/handlers"
	"beexpress/internal/http/middleware"
	"beexpress/internal/http/middleware/ratelimit"
	"beexpress/internal/logx"
)

// Deps collects everything the router mounts.
type Deps struct {
	dig.In

	Logger    logx.Logger
	Base      *handlers.Handlers
	Orders    *handlers.OrderHandler
	Profile   *handlers.ProfileHandler
	Webhook   *handlers.WebhookHandler
	RateLimit *ratelimit.Middleware
}

// New constructs a chi-based http.Handler with base middleware and routes.
// Order and profile routes require a caller identity; ping, healthcheck,
// metrics and the identity-provider webhook stay public.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))
	r.Use(middleware.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/webhooks/users", d.Webhook.Users)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(d.Logger))
		r.Use(d.RateLimit.Handler())

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", d.Orders.Create)
			r.Get("/", d.Orders.List)
			r.Route("/{trackingID}", func(r chi.Router) {
				r.Get("/", d.Orders.Get)
				r.Delete("/", d.Orders.Delete)
				r.Post("/accept", d.Orders.Accept)
				r.Post("/pickup", d.Orders.Pickup)
				r.Post("/confirm", d.Orders.Confirm)
			})
		})

		r.Get("/profile", d.Profile.Get)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
