package main

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/latoulicious/tyria/internal/characters"
	"github.com/latoulicious/tyria/internal/commands"
	"github.com/latoulicious/tyria/internal/config"
	"github.com/latoulicious/tyria/internal/cooldown"
	"github.com/latoulicious/tyria/internal/handlers"
	"github.com/latoulicious/tyria/internal/logging"
	"github.com/latoulicious/tyria/internal/reference"
	"github.com/latoulicious/tyria/pkg/cron"
	"github.com/latoulicious/tyria/pkg/database"
	"github.com/latoulicious/tyria/pkg/gamedata"
	"github.com/latoulicious/tyria/pkg/gw2"
)

// app holds every long-lived component of the bot
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	session *discordgo.Session
	db      *database.Database
	cleanup *cron.CleanupManager
	handler *handlers.Handler
	closers []func() error
}

// loadBase reads configuration and builds the logger and Discord session
func loadBase() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// Create a new Discord session using the provided token
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	return &app{cfg: cfg, logger: logger, session: session}, nil
}

// wire opens storage and builds the command pipeline
func (a *app) wire() error {
	dbConfig := database.DefaultDatabaseConfig()
	dbConfig.DatabasePath = a.cfg.DatabasePath
	dbConfig.ReferenceCacheTTL = a.cfg.ReferenceCacheTTL

	db, err := database.NewDatabase(dbConfig, a.logger.Named("database"))
	if err != nil {
		return err
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	professions, err := gamedata.Load(a.cfg.GameDataPath)
	if err != nil {
		return err
	}

	client := gw2.NewClient(a.cfg.APIBaseURL, a.cfg.HTTPTimeout, db.KeyRepository(), a.logger.Named("gw2"))
	refs := reference.NewStore(db.ReferenceRepository(), client, a.cfg.ReferenceCacheTTL, a.logger.Named("reference"))
	service := characters.NewService(client, refs, professions,
		characters.WithLogger(a.logger.Named("characters")),
	)

	limiter, err := a.limiter()
	if err != nil {
		return err
	}

	cleanup, err := cron.NewCleanupManagerWithSchedule(db.CleanExpiredCache, a.cfg.CleanupSchedule, a.logger.Named("cron"))
	if err != nil {
		return err
	}
	a.cleanup = cleanup

	cmds := commands.New(commands.Dependencies{
		Characters: service,
		Tokens:     client,
		Keys:       db.KeyRepository(),
		Cache:      db.ReferenceRepository(),
		Cleanup:    cleanup,
		Health:     db,
		Prefix:     a.cfg.CommandPrefix,
	})
	a.handler = handlers.New(cmds, cooldown.New(limiter, nil), a.cfg.CommandTimeout, a.logger.Named("handlers"))
	return nil
}

// limiter uses Redis when configured and process memory otherwise
func (a *app) limiter() (cooldown.Limiter, error) {
	if a.cfg.RedisAddr == "" {
		a.logger.Info("using in-memory cooldowns")
		return cooldown.NewMemoryLimiter(), nil
	}

	client, err := cooldown.NewRedisClient(a.cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)

	a.logger.Info("using redis cooldowns", zap.String("addr", a.cfg.RedisAddr))
	return cooldown.NewRedisLimiter(client), nil
}

// close releases everything in reverse order of creation
func (a *app) close() error {
	var errs []error
	if a.cleanup != nil {
		a.cleanup.Stop()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}
