package rankdex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "memory", "valkey" or "redis"
	addrs    []string
	password string

	workers         int
	maxAlternatives int
	maxCriteria     int
	resultTTL       time.Duration
	cacheTTL        time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

const (
	driverMemory = "memory"
	driverValkey = "valkey"
	driverRedis  = "redis"
)

// WithValkey stores evaluations (and the ranking cache) in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis stores evaluations (and the ranking cache) in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithMemory keeps evaluations in process memory. This is the default.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverMemory
		c.addrs = nil
	})
}

// WithWorkers caps how many methods of one evaluation run in parallel.
// Default: 1.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithLimits rejects matrices above the given size. Zero means unlimited.
func WithLimits(maxAlternatives, maxCriteria int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxAlternatives = maxAlternatives
		c.maxCriteria = maxCriteria
	})
}

// WithResultTTL sets how long evaluations stay retrievable. Default: 24h.
func WithResultTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.resultTTL = ttl
	})
}

// WithCache caches single-method rankings for ttl. Disabled by default.
func WithCache(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
