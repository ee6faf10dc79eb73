package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/deppfellow/rpos-gateway/internal/config"
	"github.com/deppfellow/rpos-gateway/internal/database"
	"github.com/deppfellow/rpos-gateway/internal/handler"
	"github.com/deppfellow/rpos-gateway/internal/lib/email"
	"github.com/deppfellow/rpos-gateway/internal/logger"
	"github.com/deppfellow/rpos-gateway/internal/repository"
	"github.com/deppfellow/rpos-gateway/internal/router"
	"github.com/deppfellow/rpos-gateway/internal/server"
	"github.com/deppfellow/rpos-gateway/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// DefaultContextTimeout bounds graceful shutdown.
const DefaultContextTimeout = 30 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rpos",
		Short:         "RPOS gateway: device approval registry and back office lookups",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.AddCommand(serve, newMigrateCmd(), newEmailPreviewCmd())

	// Running the bare binary serves, as deployments expect.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, svc, err := bootstrap()
			if err != nil {
				return err
			}
			defer svc.Shutdown()

			if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
				log.Error().Err(err).Msg("migration failed")
				return err
			}
			return nil
		},
	}
}

func newEmailPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email-preview [template]",
		Short: "Render an email template with sample data to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := email.TemplateApprovalRequest
			if len(args) == 1 {
				name = email.Template(args[0])
			}

			data, ok := email.PreviewData[name]
			if !ok {
				known := make([]string, 0, len(email.PreviewData))
				for t := range email.PreviewData {
					known = append(known, string(t))
				}
				sort.Strings(known)
				return fmt.Errorf("unknown template %q, known: %v", name, known)
			}

			nop := zerolog.Nop()
			html, err := email.NewClient(&config.Config{}, &nop).Render(name, data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}
}

func bootstrap() (*config.Config, zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, log, loggerService, nil
}

func serve(parent context.Context, skipMigrations bool) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !skipMigrations {
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			shutdown(srv, &log)
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	if err := shutdown(srv, &log); err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}

func shutdown(srv *server.Server, log *zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}
	return nil
}
