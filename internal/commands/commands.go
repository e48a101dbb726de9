// Package commands renders the bot's command results for Discord.
package commands

import (
	"context"
	"time"

	"github.com/latoulicious/tyria/internal/characters"
	"github.com/latoulicious/tyria/pkg/database"
	"github.com/latoulicious/tyria/pkg/gw2"
	"go.uber.org/zap"
)

// CharacterService answers the character command group
type CharacterService interface {
	Info(ctx context.Context, userID, name string) (*characters.InfoSummary, error)
	List(ctx context.Context, userID string) ([]gw2.Character, error)
	Gear(ctx context.Context, userID, name string) (*characters.GearSummary, error)
	Birthdays(ctx context.Context, userID string) ([]characters.BirthdayEntry, error)
}

// TokenVerifier resolves what an API key grants
type TokenVerifier interface {
	TokenInfo(ctx context.Context, key string) (*gw2.TokenInfo, error)
}

// KeyStore persists registered keys
type KeyStore interface {
	SaveKey(ctx context.Context, key *gw2.APIKey) error
	DeleteKey(ctx context.Context, userID string) (bool, error)
}

// CacheInspector reports on the reference cache
type CacheInspector interface {
	GetCacheStats(ctx context.Context) (*database.CacheStats, error)
}

// Scheduler exposes when the next cache cleanup runs
type Scheduler interface {
	GetNextRun() time.Time
	GetSchedule() string
	IsRunning() bool
}

// HealthChecker reports whether the backing database is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies wires Commands. Cache, Cleanup and Health are optional.
type Dependencies struct {
	Characters CharacterService
	Tokens     TokenVerifier
	Keys       KeyStore
	Cache      CacheInspector
	Cleanup    Scheduler
	Health     HealthChecker
	Prefix     string
}

// Commands executes commands and builds their responses
type Commands struct {
	characters CharacterService
	tokens     TokenVerifier
	keys       KeyStore
	cache      CacheInspector
	cleanup    Scheduler
	health     HealthChecker
	prefix     string
	now        func() time.Time
}

// New creates Commands
func New(deps Dependencies) *Commands {
	prefix := deps.Prefix
	if prefix == "" {
		prefix = "!"
	}
	return &Commands{
		characters: deps.Characters,
		tokens:     deps.Tokens,
		keys:       deps.Keys,
		cache:      deps.Cache,
		cleanup:    deps.Cleanup,
		health:     deps.Health,
		prefix:     prefix,
		now:        time.Now,
	}
}

// Prefix is the message command prefix
func (c *Commands) Prefix() string {
	return c.prefix
}

// Invocation identifies who ran a command
type Invocation struct {
	UserID string
	Logger *zap.Logger
}

// Mention renders the invoking user as a Discord mention
func (i Invocation) Mention() string {
	return "<@" + i.UserID + ">"
}

func (i Invocation) logger() *zap.Logger {
	if i.Logger == nil {
		return zap.NewNop()
	}
	return i.Logger
}

// failure reports err through the generic error reporter
func (c *Commands) failure(inv Invocation, err error) *Response {
	if isUserError(err) {
		inv.logger().Info("command rejected", zap.Error(err))
	} else {
		inv.logger().Error("command failed", zap.Error(err))
	}
	return Text(c.errorMessage(err))
}

func (c *Commands) usage(syntax string) *Response {
	return Text("Usage: `" + c.prefix + syntax + "`")
}
