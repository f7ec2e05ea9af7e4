package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "beexpress",
}

var defaultKafka = Kafka{
	Topic:   "identity.users",
	GroupID: "beexpress-roles",
}

var defaultGeo = Geo{
	Timeout:     5 * time.Second,
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    200 * time.Millisecond,
}

var defaultPprof = Pprof{
	Enabled: false,
	Port:    6060,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafka returns the default Kafka settings. Brokers are empty by
// default, which disables the consumer.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultGeo returns the default geo gateway settings.
func DefaultGeo() Geo {
	return defaultGeo
}

// DefaultPprof returns the default pprof settings. Disabled by default.
func DefaultPprof() Pprof {
	return defaultPprof
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
