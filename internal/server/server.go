// Package server defines the Server container that owns the process-wide
// dependencies and the HTTP server lifecycle.
//
// It owns:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client
//   - background job worker server (asynq)
//   - dependency health checker and its periodic monitor
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/rpos-gateway/internal/config"
	"github.com/deppfellow/rpos-gateway/internal/database"
	"github.com/deppfellow/rpos-gateway/internal/lib/health"
	"github.com/deppfellow/rpos-gateway/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/rpos-gateway/internal/logger"
)

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService holds the New Relic application, if configured.
	LoggerService *loggerPkg.LoggerService

	DB    *database.Database
	Redis *redis.Client

	// Job enqueues and runs approval notifications.
	Job *job.JobService

	// Health runs the dependency checks behind /status.
	Health *health.Checker

	// monitor is nil when periodic health checks are disabled.
	monitor *health.Monitor

	httpServer *http.Server
}

// New connects to the database and Redis and starts the background
// workers. A Redis outage does not block startup: it only affects
// notifications and is reported by the health checks.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to Redis, continuing without Redis")
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
	}

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger)

	if err := jobService.Start(); err != nil {
		_ = jobService.Client.Close()
		server.release()
		return nil, fmt.Errorf("failed to start job server: %w", err)
	}
	server.Job = jobService

	server.Health = newHealthChecker(server)

	hc := cfg.Observability.HealthChecks
	if hc.Enabled {
		server.monitor = health.NewMonitor(server.Health, hc.Interval, logger)
		if err := server.monitor.Start(); err != nil {
			server.release()
			return nil, fmt.Errorf("failed to start health monitor: %w", err)
		}
	}

	return server, nil
}

// release stops the workers and closes the connections opened by New when
// startup fails part way.
func (s *Server) release() {
	if s.Job != nil {
		s.Job.Stop()
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.DB != nil {
		_ = s.DB.Close()
	}
}

// newHealthChecker builds the configured checks. The database is required;
// Redis only degrades the report.
func newHealthChecker(s *Server) *health.Checker {
	available := map[string]health.Check{
		"database": {Name: "database", Required: true, Run: s.DB.Ping},
		"redis": {Name: "redis", Run: func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}},
	}

	var checks []health.Check
	for _, name := range s.Config.Observability.HealthChecks.Checks {
		if check, ok := available[name]; ok {
			checks = append(checks, check)
		}
	}

	var events health.EventRecorder
	if app := s.LoggerService.GetApplication(); app != nil {
		events = app
	}

	return health.NewChecker(
		s.Logger,
		s.Config.Primary.Env,
		s.Config.Observability.HealthChecks.Timeout,
		events,
		checks...,
	)
}

// SetupHTTPServer configures the net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains HTTP requests until ctx expires, then stops the workers
// and closes every connection.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.monitor != nil {
		s.monitor.Stop()
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
	}

	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
	}

	return errors.Join(errs...)
}
