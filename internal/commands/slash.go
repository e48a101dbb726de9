package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// ApplicationCommandManager is the subset of *discordgo.Session that manages slash commands
type ApplicationCommandManager interface {
	ApplicationCommandCreate(appID string, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

func nameOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "name",
		Description: description,
		Required:    true,
	}
}

// SlashCommands are the application commands mirroring the message commands
func SlashCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "character",
			Description: "Guild Wars 2 character commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "info",
					Description: "Info about one of your characters",
					Options:     []*discordgo.ApplicationCommandOption{nameOption("Character name")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List your characters",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "gear",
					Description: "Equipment of one of your characters",
					Options:     []*discordgo.ApplicationCommandOption{nameOption("Character name")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "birthdays",
					Description: "Days until each of your characters' birthdays",
				},
			},
		},
		{
			Name:        "key",
			Description: "Manage your Guild Wars 2 API key",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Register your API key",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "key",
							Description: "API key with the characters permission",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Forget your API key",
				},
			},
		},
		{
			Name:        "cache",
			Description: "Show reference cache statistics",
		},
		{
			Name:        "help",
			Description: "Show help information",
		},
	}
}

// RegisterSlashCommands registers every slash command globally when guildID is empty
func RegisterSlashCommands(s ApplicationCommandManager, appID, guildID string, logger *zap.Logger) error {
	logger.Info("registering slash commands", zap.String("guild_id", guildID))

	for _, cmd := range SlashCommands() {
		if _, err := s.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		logger.Info("registered command", zap.String("command", cmd.Name))
	}
	return nil
}

// DeleteAllSlashCommands removes every registered slash command
func DeleteAllSlashCommands(s ApplicationCommandManager, appID, guildID string, logger *zap.Logger) error {
	registered, err := s.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("failed to fetch commands: %w", err)
	}

	for _, cmd := range registered {
		if err := s.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			return fmt.Errorf("failed to delete command %s: %w", cmd.Name, err)
		}
		logger.Info("deleted command", zap.String("command", cmd.Name))
	}
	return nil
}
