package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGeoRetriesTotal returns a Prometheus counter for the number of retry attempts performed by the geo gateway
func NewGeoRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geo_gateway_retries_total",
		Help: "Total number of retry attempts performed by the geo gateway",
	})
}

// NewAcceptConflictsTotal returns a Prometheus counter for the number of lost order-acceptance races
func NewAcceptConflictsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_accept_conflicts_total",
		Help: "Total number of order accept attempts that lost the assignment race",
	})
}
