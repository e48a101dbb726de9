package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/latoulicious/tyria/internal/presence"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and answer commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadBase()
		if err != nil {
			return err
		}
		if err := a.wire(); err != nil {
			_ = a.close()
			return err
		}
		defer a.close()

		// Register the message and slash command handlers
		a.session.AddHandler(a.handler.MessageHandler)
		a.session.AddHandler(a.handler.SlashCommandHandler)

		// Open a websocket connection to Discord and begin listening.
		if err := a.session.Open(); err != nil {
			return fmt.Errorf("failed to open Discord session: %w", err)
		}
		defer a.session.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
		defer stop()

		presenceManager := presence.NewPresenceManager(a.session, presence.SessionGuildCount(a.session), a.cfg.CommandPrefix, a.logger.Named("presence"))
		presenceManager.UpdateDefaultPresence()
		presenceManager.StartPeriodicUpdates(ctx, 5*time.Minute)

		a.cleanup.Start()

		a.logger.Info("bot is running, press CTRL-C to exit", zap.String("prefix", a.cfg.CommandPrefix))
		<-ctx.Done()

		a.logger.Info("shutting down")
		return nil
	},
}
