package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ims24/ims24/config"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 2
	connMaxLifetime = 5 * time.Minute
)

// DB wraps the sql.DB connection pool for the IMS database
type DB struct {
	*sql.DB
	logger *zap.Logger
	target string
}

// NewDB creates a connection pool for the IMS database. No connection is
// made until the pool is first used.
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	logger.Info("database pool configured",
		zap.String("connection", cfg.LogString()))

	return wrap(db, cfg.LogString(), logger), nil
}

func wrap(db *sql.DB, target string, logger *zap.Logger) *DB {
	return &DB{
		DB:     db,
		logger: logger,
		target: target,
	}
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed (%s): %w", db.target, err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed (%s): %w", db.target, err)
	}

	return nil
}
