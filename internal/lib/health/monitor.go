package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Monitor runs a Checker on a cron schedule and keeps the latest report.
type Monitor struct {
	checker  *Checker
	interval time.Duration
	logger   *zerolog.Logger
	cron     *cron.Cron

	mu   sync.RWMutex
	last *Report
}

// NewMonitor schedules checker every interval. Overlapping runs are skipped.
func NewMonitor(checker *Checker, interval time.Duration, logger *zerolog.Logger) *Monitor {
	cl := cronLogger{log: logger}
	return &Monitor{
		checker:  checker,
		interval: interval,
		logger:   logger,
		cron:     cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
	}
}

// Start registers the job and starts the scheduler in the background.
func (m *Monitor) Start() error {
	if _, err := m.cron.AddFunc(fmt.Sprintf("@every %s", m.interval), m.RunOnce); err != nil {
		return fmt.Errorf("failed to schedule health monitor: %w", err)
	}

	m.cron.Start()
	m.logger.Info().Dur("interval", m.interval).Msg("health monitor started")
	return nil
}

// Stop halts the scheduler and waits for a running check to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	m.logger.Info().Msg("health monitor stopped")
}

// RunOnce runs the checker and stores the report, logging status changes.
func (m *Monitor) RunOnce() {
	report := m.checker.Run(context.Background())

	m.mu.Lock()
	prev := m.last
	m.last = &report
	m.mu.Unlock()

	if prev == nil || prev.Status != report.Status {
		event := m.logger.Info()
		if report.Status != StatusHealthy {
			event = m.logger.Warn()
		}
		event.Str("status", report.Status).Msg("dependency health changed")
	}
}

// Snapshot returns the latest report, if any run has completed.
func (m *Monitor) Snapshot() (Report, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.last == nil {
		return Report{}, false
	}
	return *m.last, true
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log *zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Str("component", "cron").Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Str("component", "cron").Msg(msg)
}
