package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, "tyria.db", cfg.DatabasePath)
	assert.Equal(t, "https://api.guildwars2.com/v2", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.CommandTimeout)
	assert.Equal(t, 168*time.Hour, cfg.ReferenceCacheTTL)
	assert.Equal(t, "0 0 */6 * * *", cfg.CleanupSchedule)
	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DATABASE_PATH", "/data/bot.db")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "/data/bot.db", cfg.DatabasePath)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "?", cfg.CommandPrefix)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestParse_MissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Parse()
	assert.ErrorIs(t, err, ErrDiscordTokenNotSet)
}

func TestParse_BadDuration(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("COMMAND_TIMEOUT", "soon")

	_, err := Parse()
	assert.Error(t, err)
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	cfg := &Config{
		CleanupSchedule: "whenever",
		Logging:         LoggingConfig{Level: "trace", Format: "xml"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDiscordTokenNotSet)

	for _, fragment := range []string{
		"DATABASE_PATH", "GW2_API_BASE_URL", "HTTP_TIMEOUT", "COMMAND_TIMEOUT",
		"REFERENCE_CACHE_TTL", "CLEANUP_SCHEDULE", "COMMAND_PREFIX", "LOG_LEVEL", "LOG_FORMAT",
	} {
		assert.Contains(t, err.Error(), fragment)
	}
}
