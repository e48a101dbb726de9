package handlers

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/latoulicious/tyria/internal/commands"
)

// SlashCommandHandler handles slash command interactions
func (h *Handler) SlashCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.handleInteraction(s, i.Interaction)
}

func (h *Handler) handleInteraction(s Session, i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionApplicationCommand {
		h.logger.Debug("ignoring interaction", zap.Int("type", int(i.Type)))
		return
	}

	user := interactionUser(i)
	if user == nil || user.Bot {
		return
	}

	req := parseInteraction(i.ApplicationCommandData())
	req.userID = user.ID

	// Acknowledge the interaction immediately; key replies stay private
	deferred := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if req.group == "key" {
		deferred.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	if err := s.InteractionRespond(i, deferred); err != nil {
		h.logger.Error("failed to acknowledge interaction", zap.String("command", req.name()), zap.Error(err))
		return
	}

	resp := h.execute(req)
	if err := commands.Send(&commands.InteractionSink{Session: s, Interaction: i}, resp); err != nil {
		h.logger.Error("failed to send interaction response", zap.String("command", req.name()), zap.Error(err))
	}
}

// interactionUser is the member in guilds and the user in direct messages
func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func parseInteraction(data discordgo.ApplicationCommandInteractionData) request {
	req := request{group: data.Name}
	if len(data.Options) == 0 || data.Options[0].Type != discordgo.ApplicationCommandOptionSubCommand {
		return req
	}

	sub := data.Options[0]
	req.sub = sub.Name
	for _, option := range sub.Options {
		switch option.Name {
		case "name", "key":
			req.arg = option.StringValue()
		}
	}
	return req
}
