package database

import (
	"time"
)

// DatabaseConfig holds configuration for the SQLite database
type DatabaseConfig struct {
	// Connection settings
	DatabasePath      string        `json:"database_path" yaml:"database_path"`
	MaxConnections    int           `json:"max_connections" yaml:"max_connections"`
	ConnectionTimeout time.Duration `json:"connection_timeout" yaml:"connection_timeout"`

	// Reference cache settings
	ReferenceCacheTTL time.Duration `json:"reference_cache_ttl" yaml:"reference_cache_ttl"`

	// Performance settings
	WALMode         bool   `json:"wal_mode" yaml:"wal_mode"`
	SynchronousMode string `json:"synchronous_mode" yaml:"synchronous_mode"`
	BusyTimeout     int    `json:"busy_timeout" yaml:"busy_timeout"`
}

// DefaultDatabaseConfig returns a configuration with sensible defaults
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		DatabasePath:      "tyria.db",
		MaxConnections:    10,
		ConnectionTimeout: 30 * time.Second,

		ReferenceCacheTTL: 7 * 24 * time.Hour, // item names rarely change

		WALMode:         true,
		SynchronousMode: "NORMAL",
		BusyTimeout:     5000,
	}
}

// Validate validates the database configuration
func (c *DatabaseConfig) Validate() error {
	if c.DatabasePath == "" {
		return ErrInvalidDatabasePath
	}
	if c.MaxConnections <= 0 {
		return ErrInvalidMaxConnections
	}
	if c.ConnectionTimeout <= 0 {
		return ErrInvalidConnectionTimeout
	}
	if c.ReferenceCacheTTL <= 0 {
		return ErrInvalidReferenceCacheTTL
	}
	if c.SynchronousMode != "OFF" && c.SynchronousMode != "NORMAL" && c.SynchronousMode != "FULL" {
		return ErrInvalidSynchronousMode
	}
	return nil
}

// CacheStats holds the number of live entries per reference table
type CacheStats struct {
	Items     int `json:"items"`
	ItemStats int `json:"item_stats"`
	Titles    int `json:"titles"`
	Guilds    int `json:"guilds"`
	APIKeys   int `json:"api_keys"`
}
