package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latoulicious/tyria/internal/commands"
)

var guildID string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the slash commands with Discord",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(a *app, appID string) error {
			return commands.RegisterSlashCommands(a.session, appID, guildID, a.logger)
		})
	},
}

var unregisterCmd = &cobra.Command{
	Use:   "unregister",
	Short: "Delete every registered slash command",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(a *app, appID string) error {
			return commands.DeleteAllSlashCommands(a.session, appID, guildID, a.logger)
		})
	},
}

// withSession opens a short-lived Discord session to learn the application id
func withSession(fn func(a *app, appID string) error) error {
	a, err := loadBase()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer a.session.Close()

	return fn(a, a.session.State.User.ID)
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, unregisterCmd} {
		c.Flags().StringVar(&guildID, "guild", "", "register in one guild instead of globally")
	}
}
