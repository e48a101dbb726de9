package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Database represents the SQLite database holding API keys and cached reference data
type Database struct {
	config *DatabaseConfig
	db     *sql.DB
	logger *zap.Logger

	referenceRepository ReferenceRepository
	keyRepository       KeyRepository
}

// NewDatabase opens the database, creates missing tables and wires the repositories
func NewDatabase(config *DatabaseConfig, logger *zap.Logger) (*Database, error) {
	if config == nil {
		config = DefaultDatabaseConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", buildConnectionString(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(config.MaxConnections)
	db.SetMaxIdleConns(config.MaxConnections / 2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectionTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initDatabase(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logger.Info("database opened", zap.String("path", config.DatabasePath))

	return &Database{
		config:              config,
		db:                  db,
		logger:              logger,
		referenceRepository: &referenceRepository{db: db},
		keyRepository:       &keyRepository{db: db},
	}, nil
}

// buildConnectionString builds the SQLite connection string with options
func buildConnectionString(config *DatabaseConfig) string {
	params := []string{
		"_synchronous=" + config.SynchronousMode,
		fmt.Sprintf("_busy_timeout=%d", config.BusyTimeout),
		"_foreign_keys=on",
	}
	if config.WALMode {
		params = append(params, "_journal_mode=WAL")
	}

	return config.DatabasePath + "?" + strings.Join(params, "&")
}

// initDatabase creates the necessary tables
func initDatabase(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS api_keys (
			user_id TEXT PRIMARY KEY,
			api_key TEXT NOT NULL,
			key_name TEXT NOT NULL DEFAULT '',
			permissions TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS item_cache (
			item_id INTEGER PRIMARY KEY,
			item_data TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS itemstat_cache (
			stat_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS title_cache (
			title_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS guild_cache (
			guild_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			tag TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME NOT NULL
		)`,

		// Create indexes for expiry sweeps
		`CREATE INDEX IF NOT EXISTS idx_item_cache_expires ON item_cache(expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_itemstat_cache_expires ON itemstat_cache(expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_title_cache_expires ON title_cache(expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_guild_cache_expires ON guild_cache(expires_at)`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// ReferenceRepository returns the reference data cache
func (d *Database) ReferenceRepository() ReferenceRepository {
	return d.referenceRepository
}

// KeyRepository returns the API key store
func (d *Database) KeyRepository() KeyRepository {
	return d.keyRepository
}

// Ping checks the connection is alive
func (d *Database) Ping(ctx context.Context) error {
	if d.db == nil {
		return ErrDatabaseNotConnected
	}
	return d.db.PingContext(ctx)
}

// CleanExpiredCache removes expired reference entries and logs how many were dropped
func (d *Database) CleanExpiredCache(ctx context.Context) error {
	removed, err := d.referenceRepository.CleanExpiredCache(ctx)
	if err != nil {
		return err
	}

	d.logger.Info("expired reference cache cleaned", zap.Int64("removed", removed))
	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}
