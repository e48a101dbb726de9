package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// ErrDiscordTokenNotSet is returned when DISCORD_TOKEN is missing
var ErrDiscordTokenNotSet = errors.New("DISCORD_TOKEN is not set")

// LoggingConfig selects the logger level and encoding
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

type Config struct {
	DiscordToken      string        `env:"DISCORD_TOKEN"`
	DatabasePath      string        `env:"DATABASE_PATH" envDefault:"tyria.db"`
	APIBaseURL        string        `env:"GW2_API_BASE_URL" envDefault:"https://api.guildwars2.com/v2"`
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	CommandTimeout    time.Duration `env:"COMMAND_TIMEOUT" envDefault:"30s"`
	ReferenceCacheTTL time.Duration `env:"REFERENCE_CACHE_TTL" envDefault:"168h"`
	CleanupSchedule   string        `env:"CLEANUP_SCHEDULE" envDefault:"0 0 */6 * * *"`
	RedisAddr         string        `env:"REDIS_ADDR"`
	GameDataPath      string        `env:"GAMEDATA_PATH"`
	CommandPrefix     string        `env:"COMMAND_PREFIX" envDefault:"!"`
	Logging           LoggingConfig
}

// LoadConfig reads .env when present, then the process environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return Parse()
}

// Parse builds the configuration from the process environment and validates it
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error
	if c.DiscordToken == "" {
		errs = append(errs, ErrDiscordTokenNotSet)
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("DATABASE_PATH must not be empty"))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("GW2_API_BASE_URL must not be empty"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout))
	}
	if c.CommandTimeout <= 0 {
		errs = append(errs, fmt.Errorf("COMMAND_TIMEOUT must be positive, got %s", c.CommandTimeout))
	}
	if c.ReferenceCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("REFERENCE_CACHE_TTL must be positive, got %s", c.ReferenceCacheTTL))
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(c.CleanupSchedule); err != nil {
		errs = append(errs, fmt.Errorf("CLEANUP_SCHEDULE %q: %w", c.CleanupSchedule, err))
	}
	if strings.TrimSpace(c.CommandPrefix) == "" {
		errs = append(errs, errors.New("COMMAND_PREFIX must not be empty"))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}
