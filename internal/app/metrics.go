package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"beexpress/internal/metrics"
)

type countersOut struct {
	dig.Out

	RateLimitExceeded prometheus.Counter `name:"rate_limit_exceeded_total"`
	GeoRetries        prometheus.Counter `name:"geo_gateway_retries_total"`
	AcceptConflicts   prometheus.Counter `name:"order_accept_conflicts_total"`
}

func newCounters() countersOut {
	return countersOut{
		RateLimitExceeded: registerCounter(metrics.NewRateLimitExceededTotal()),
		GeoRetries:        registerCounter(metrics.NewGeoRetriesTotal()),
		AcceptConflicts:   registerCounter(metrics.NewAcceptConflictsTotal()),
	}
}

// registerCounter registers the counter in the default registry. A
// container rebuilt in the same process reuses the collector already
// registered instead of panicking.
func registerCounter(c prometheus.Counter) prometheus.Counter {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return c
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, newCounters)
}
