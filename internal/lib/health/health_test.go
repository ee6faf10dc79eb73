package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeRecorder struct {
	events []map[string]interface{}
}

func (f *fakeRecorder) RecordCustomEvent(eventType string, params map[string]interface{}) {
	if eventType != "HealthCheckError" {
		return
	}
	f.events = append(f.events, params)
}

func ok(context.Context) error   { return nil }
func fail(context.Context) error { return errors.New("connection refused") }

func TestCheckerRun(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name       string
		checks     []Check
		wantStatus string
		wantEvents int
	}{
		{
			name:       "all passing",
			checks:     []Check{{Name: "database", Required: true, Run: ok}, {Name: "redis", Run: ok}},
			wantStatus: StatusHealthy,
		},
		{
			name:       "optional failing",
			checks:     []Check{{Name: "database", Required: true, Run: ok}, {Name: "redis", Run: fail}},
			wantStatus: StatusDegraded,
			wantEvents: 1,
		},
		{
			name:       "required failing",
			checks:     []Check{{Name: "database", Required: true, Run: fail}, {Name: "redis", Run: ok}},
			wantStatus: StatusUnhealthy,
			wantEvents: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			c := NewChecker(&logger, "test", time.Second, rec, tt.checks...)

			report := c.Run(context.Background())

			if report.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", report.Status, tt.wantStatus)
			}
			if report.Environment != "test" {
				t.Errorf("Environment = %q, want test", report.Environment)
			}
			if len(report.Checks) != len(tt.checks) {
				t.Errorf("got %d check results, want %d", len(report.Checks), len(tt.checks))
			}
			if len(rec.events) != tt.wantEvents {
				t.Errorf("recorded %d events, want %d", len(rec.events), tt.wantEvents)
			}
		})
	}
}

func TestCheckerTimeout(t *testing.T) {
	logger := zerolog.Nop()
	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	c := NewChecker(&logger, "test", 10*time.Millisecond, nil, Check{Name: "database", Required: true, Run: slow})
	report := c.Run(context.Background())

	if report.Healthy() {
		t.Fatal("Healthy() = true for a check that timed out")
	}
	if got := report.Checks["database"].Error; got != context.DeadlineExceeded.Error() {
		t.Errorf("Error = %q, want deadline exceeded", got)
	}
}

func TestMonitorRunOnce(t *testing.T) {
	logger := zerolog.Nop()
	healthy := true
	check := func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("down")
	}

	m := NewMonitor(NewChecker(&logger, "test", time.Second, nil, Check{Name: "database", Required: true, Run: check}), time.Second, &logger)

	if _, ok := m.Snapshot(); ok {
		t.Fatal("Snapshot() before first run reported a report")
	}

	m.RunOnce()
	if r, ok := m.Snapshot(); !ok || r.Status != StatusHealthy {
		t.Fatalf("Snapshot() = %+v, %v; want healthy", r, ok)
	}

	healthy = false
	m.RunOnce()
	if r, _ := m.Snapshot(); r.Status != StatusUnhealthy {
		t.Errorf("Status = %q after failure, want unhealthy", r.Status)
	}
}

func TestMonitorStartStop(t *testing.T) {
	logger := zerolog.Nop()
	m := NewMonitor(NewChecker(&logger, "test", time.Second, nil), time.Second, &logger)

	if err := m.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	m.Stop()
}
