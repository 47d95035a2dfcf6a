package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ims24/ims24/config"
	"github.com/ims24/ims24/repositories/postgres"
	"github.com/ims24/ims24/search"
	"go.uber.org/zap"
)

// Check names reported by readiness probes
const (
	CheckDatabase = "database"
	CheckSearch   = "search"
)

// HealthChecker is implemented by every external dependency that can be probed.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies holds the handles built from a Config.
// This is the central wiring point for the command line and status server.
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	InstanceID string

	DB     *postgres.DB
	Search *search.Client
}

// NewDependencies validates cfg and builds the database and search handles.
// Neither handle dials until it is first used.
func NewDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	deps := &Dependencies{
		Config:     cfg,
		Logger:     logger,
		InstanceID: uuid.NewString(),
	}

	db, err := postgres.NewDB(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.DB = db

	client, err := search.NewClient(cfg.Search, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize search client: %w", err)
	}
	deps.Search = client

	logger.Info("all dependencies initialized",
		zap.String("instance_id", deps.InstanceID),
		zap.String("environment", cfg.Environment))
	return deps, nil
}

// HealthChecks returns the probes for every initialized dependency.
func (d *Dependencies) HealthChecks() map[string]HealthChecker {
	checks := make(map[string]HealthChecker, 2)
	if d.DB != nil {
		checks[CheckDatabase] = d.DB
	}
	if d.Search != nil {
		checks[CheckSearch] = d.Search
	}
	return checks
}

// CheckAll runs every probe once and returns the joined failures.
func (d *Dependencies) CheckAll(ctx context.Context) error {
	var errs []error
	for name, check := range d.HealthChecks() {
		if err := check.HealthCheck(ctx); err != nil {
			d.Logger.Error("dependency check failed", zap.String("check", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		d.Logger.Info("dependency check passed", zap.String("check", name))
	}
	return errors.Join(errs...)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close() error {
	d.Logger.Info("shutting down dependencies")

	var errs []error
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %w", errors.Join(errs...))
	}
	return nil
}
