// Package handlers routes Discord events to the bot's commands.
package handlers

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/latoulicious/tyria/internal/commands"
	"github.com/latoulicious/tyria/internal/cooldown"
	"go.uber.org/zap"
)

// Session is the subset of *discordgo.Session the handlers use
type Session interface {
	commands.Messenger
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Handler dispatches message and slash commands
type Handler struct {
	commands  *commands.Commands
	cooldowns *cooldown.Cooldowns
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a Handler. Every command runs under its own timeout.
func New(cmds *commands.Commands, cooldowns *cooldown.Cooldowns, timeout time.Duration, logger *zap.Logger) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{
		commands:  cmds,
		cooldowns: cooldowns,
		timeout:   timeout,
		logger:    logger,
	}
}

// request is a command invocation independent of how it arrived
type request struct {
	group  string
	sub    string
	arg    string
	userID string
}

// name is the command as logged, e.g. "character gear"
func (r request) name() string {
	if r.sub == "" {
		return r.group
	}
	return r.group + " " + r.sub
}

// execute runs req and returns the response to deliver
func (h *Handler) execute(req request) *commands.Response {
	inv := commands.Invocation{
		UserID: req.userID,
		Logger: h.logger.With(
			zap.String("command", req.name()),
			zap.String("user_id", req.userID),
			zap.String("invocation_id", uuid.NewString()),
		),
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if req.group == "character" && req.sub != "" {
		if resp := h.checkCooldown(ctx, inv, req.sub); resp != nil {
			return resp
		}
	}

	inv.Logger.Debug("executing command")

	switch req.group {
	case "character":
		switch req.sub {
		case "info":
			return h.commands.CharacterInfo(ctx, inv, req.arg)
		case "list":
			return h.commands.CharacterList(ctx, inv)
		case "gear":
			return h.commands.CharacterGear(ctx, inv, req.arg)
		case "birthdays":
			return h.commands.CharacterBirthdays(ctx, inv)
		default:
			return characterUsage(h.commands.Prefix())
		}
	case "key":
		switch req.sub {
		case "add":
			return h.commands.KeyAdd(ctx, inv, req.arg)
		case "remove":
			return h.commands.KeyRemove(ctx, inv)
		default:
			return commands.Text("Usage: `" + h.commands.Prefix() + "key add <key>` or `" + h.commands.Prefix() + "key remove`")
		}
	case "cache":
		return h.commands.CacheStatus(ctx, inv)
	case "help", "h":
		return h.commands.Help()
	default:
		return commands.Text("Unknown command. Try " + h.commands.Prefix() + "help.")
	}
}

func (h *Handler) checkCooldown(ctx context.Context, inv commands.Invocation, command string) *commands.Response {
	if h.cooldowns == nil {
		return nil
	}

	retry, err := h.cooldowns.Check(ctx, command, inv.UserID)
	if err != nil {
		inv.Logger.Warn("cooldown check failed, allowing command", zap.Error(err))
		return nil
	}
	if retry <= 0 {
		return nil
	}

	inv.Logger.Debug("command on cooldown", zap.Duration("retry_after", retry))
	return commands.Text(fmt.Sprintf("This command is on cooldown. Try again in %ds.", int(math.Ceil(retry.Seconds()))))
}

func characterUsage(prefix string) *commands.Response {
	subcommands := []string{"info <name>", "list", "gear <name>", "birthdays"}
	lines := make([]string, 0, len(subcommands))
	for _, sub := range subcommands {
		lines = append(lines, "• `"+prefix+"character "+sub+"`")
	}
	return commands.Text("Character related commands:\n" + strings.Join(lines, "\n"))
}
