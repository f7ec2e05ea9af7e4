package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"beexpress/internal/config"
	"beexpress/internal/gateway/geo"
	"beexpress/internal/http/handlers"
	"beexpress/internal/http/router"
	"beexpress/internal/logx"
	"beexpress/internal/repository"
	"beexpress/internal/service/orders"
	"beexpress/internal/service/roles"
	"beexpress/internal/service/users"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
	worker    bool
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// ForWorker switches the builder to the Kafka worker layout: no HTTP
// surface, consumer wiring instead.
func (b *ContainerBuilder) ForWorker() *ContainerBuilder {
	b.worker = true
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if b.worker {
		if err := registerWorker(container); err != nil {
			return nil, fmt.Errorf("worker: %w", err)
		}
		return container, nil
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker variant of the container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().ForWorker().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		func() *log.Logger { return log.Default() },
		NewLogger,
		config.Load,
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

type ordersServiceIn struct {
	dig.In

	Repo            *repository.OrderRepo
	Roles           *roles.Service
	Timeout         time.Duration
	Logger          logx.Logger
	AcceptConflicts prometheus.Counter `name:"order_accept_conflicts_total"`
}

type geoGatewayIn struct {
	dig.In

	Client  *geo.Client
	Config  *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"geo_gateway_retries_total"`
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewRoleRepo,
		repository.NewOrderRepo,
		func() time.Duration { return 3 * time.Second },
		func(repo *repository.RoleRepo, timeout time.Duration, logger logx.Logger) *roles.Service {
			return roles.NewService(repo, timeout, logger)
		},
		func(in ordersServiceIn) *orders.Service {
			return orders.NewService(in.Repo, in.Roles, in.Timeout, in.Logger, in.AcceptConflicts)
		},
		func(svc *roles.Service) *users.Processor {
			return users.NewProcessor(svc)
		},
		func(cfg *config.Config) *geo.Client {
			if cfg.Geo.APIKey == "" {
				return nil
			}
			return geo.NewClient(geo.Config{
				APIKey:  cfg.Geo.APIKey,
				BaseURL: cfg.Geo.BaseURL,
				Timeout: cfg.Geo.Timeout,
			})
		},
		func(in geoGatewayIn) *geo.RetryingGateway {
			if in.Client == nil {
				return nil
			}
			return geo.NewRetryingGateway(in.Client, in.Logger, in.Retries, geo.RetryConfig{
				MaxAttempts: in.Config.Geo.MaxAttempts,
				BaseDelay:   in.Config.Geo.BaseDelay,
				MaxDelay:    in.Config.Geo.MaxDelay,
			})
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewOrdersUsecase,
		handlers.NewRolesUsecase,
		handlers.NewDistancer,
		handlers.NewOrderHandler,
		handlers.NewProfileHandler,
		handlers.NewWebhookHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
	)
}
