package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ims24/ims24/app"
	"github.com/ims24/ims24/config"
	"github.com/ims24/ims24/internal/observability"
	"github.com/ims24/ims24/routes"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp(os.LookupEnv).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ims24: %v\n", err)
		os.Exit(1)
	}
}

func newApp(lookup config.LookupFunc) *cli.App {
	return &cli.App{
		Name:  "ims24",
		Usage: "Configuration and status tooling for the ImmobilienScout24 crawler",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "env-file",
				Aliases: []string{"e"},
				Usage:   "Read settings from `FILE` (process environment takes precedence)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Print the resolved configuration with secrets masked",
				Action: withConfig(lookup, runConfig),
			},
			{
				Name:   "check",
				Usage:  "Probe the database and search index once",
				Action: withConfig(lookup, runCheck),
			},
			{
				Name:   "serve",
				Usage:  "Run the status HTTP server",
				Action: withConfig(lookup, runServe),
			},
		},
	}
}

func withConfig(lookup config.LookupFunc, action func(*cli.Context, *config.Config) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(lookup, c.StringSlice("env-file"))
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return action(c, cfg)
	}
}

func loadConfig(lookup config.LookupFunc, envFiles []string) (*config.Config, error) {
	if len(envFiles) > 0 {
		values, err := config.ReadDotEnv(envFiles...)
		if err != nil {
			return nil, err
		}
		lookup = config.ChainLookup(lookup, config.MapLookup(values))
	}
	return config.Load(lookup)
}

func runConfig(c *cli.Context, cfg *config.Config) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg.Redacted())
}

func runCheck(c *cli.Context, cfg *config.Config) error {
	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	deps, err := app.NewDependencies(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDependencies(deps, logger)

	if err := deps.CheckAll(c.Context); err != nil {
		return fmt.Errorf("dependency checks failed: %w", err)
	}

	fmt.Fprintln(c.App.Writer, "all dependency checks passed")
	return nil
}

func runServe(c *cli.Context, cfg *config.Config) error {
	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	deps, err := app.NewDependencies(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDependencies(deps, logger)

	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           routes.SetupRoutes(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, server, 10*time.Second, logger)
}

// closeDependencies releases deps and logs any shutdown error.
func closeDependencies(deps io.Closer, logger *zap.Logger) {
	if err := deps.Close(); err != nil {
		logger.Error("failed to close dependencies", zap.Error(err))
	}
}

// serve runs server until ctx is done, then shuts it down within timeout.
func serve(ctx context.Context, server *http.Server, timeout time.Duration, logger *zap.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting status server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down status server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("status server stopped")
	return nil
}
