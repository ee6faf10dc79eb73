// Package health runs dependency checks for the status endpoint and the
// background health monitor.
package health

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
)

// CheckFunc probes a single dependency.
type CheckFunc func(ctx context.Context) error

// Check is a named dependency probe. A failing Required check makes the
// whole report unhealthy; an optional one only degrades it.
type Check struct {
	Name     string
	Required bool
	Run      CheckFunc
}

// Result is the outcome of one check.
type Result struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// Report is the outcome of a full run.
type Report struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Environment string            `json:"environment"`
	Checks      map[string]Result `json:"checks"`
}

// Healthy reports whether every required check passed.
func (r Report) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// EventRecorder receives failure events. *newrelic.Application satisfies it.
type EventRecorder interface {
	RecordCustomEvent(eventType string, params map[string]interface{})
}

// Checker runs a fixed set of checks, each bounded by timeout.
type Checker struct {
	checks      []Check
	timeout     time.Duration
	environment string
	logger      *zerolog.Logger
	events      EventRecorder
}

// NewChecker builds a Checker. events may be nil.
func NewChecker(logger *zerolog.Logger, environment string, timeout time.Duration, events EventRecorder, checks ...Check) *Checker {
	return &Checker{
		checks:      checks,
		timeout:     timeout,
		environment: environment,
		logger:      logger,
		events:      events,
	}
}

// Run executes every check in order and builds a report.
func (c *Checker) Run(ctx context.Context) Report {
	start := time.Now()

	report := Report{
		Status:      StatusHealthy,
		Timestamp:   start.UTC(),
		Environment: c.environment,
		Checks:      make(map[string]Result, len(c.checks)),
	}

	for _, check := range c.checks {
		result, err := c.runOne(ctx, check)
		report.Checks[check.Name] = result

		if err == nil {
			continue
		}

		if check.Required {
			report.Status = StatusUnhealthy
		} else if report.Status == StatusHealthy {
			report.Status = StatusDegraded
		}
	}

	if report.Status == StatusUnhealthy {
		c.record(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
	}

	return report
}

func (c *Checker) runOne(ctx context.Context, check Check) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := check.Run(ctx)
	elapsed := time.Since(start)

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("check", check.Name).
			Bool("required", check.Required).
			Dur("response_time", elapsed).
			Msg("health check failed")

		c.record(map[string]interface{}{
			"check_type":       check.Name,
			"operation":        "health_check",
			"error_type":       check.Name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return Result{
			Status:       StatusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}, err
	}

	c.logger.Debug().
		Str("check", check.Name).
		Dur("response_time", elapsed).
		Msg("health check passed")

	return Result{Status: StatusHealthy, ResponseTime: elapsed.String()}, nil
}

func (c *Checker) record(params map[string]interface{}) {
	if c.events != nil {
		c.events.RecordCustomEvent("HealthCheckError", params)
	}
}
