// Package health probes the storefront's dependencies for the readiness
// endpoint.
package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckResult is the outcome of probing a single dependency.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResult aggregates the dependency checks into one status.
type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

const probeTimeout = 2 * time.Second

type Checker struct {
	db     Pinger
	logger *slog.Logger
	gauge  *prometheus.GaugeVec
}

// NewChecker builds a checker and registers its up/down gauge on reg.
func NewChecker(db Pinger, logger *slog.Logger, reg prometheus.Registerer) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "lunor",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	return &Checker{
		db:     db,
		logger: logger.With("component", "health"),
		gauge:  gauge,
	}
}

// Liveness only says the process is alive. No dependencies are touched, so a
// database outage never gets the pod restarted.
func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: "up"}
}

// Readiness probes every dependency. Any failing check marks the whole
// result down.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	result := HealthResult{Status: "up", Checks: make(map[string]CheckResult)}
	c.probe(ctx, &result, "postgres", c.db.Ping)
	return result
}

func (c *Checker) probe(ctx context.Context, result *HealthResult, name string, ping func(context.Context) error) {
	if err := ping(ctx); err != nil {
		c.logger.Warn("health check failed", "dependency", name, "error", err)
		result.Status = "down"
		result.Checks[name] = CheckResult{Status: "down", Error: err.Error()}
		c.gauge.WithLabelValues(name).Set(0)
		return
	}
	result.Checks[name] = CheckResult{Status: "up"}
	c.gauge.WithLabelValues(name).Set(1)
}
