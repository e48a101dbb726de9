package handlers

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/latoulicious/tyria/internal/commands"
)

// MessageHandler handles prefixed text commands
func (h *Handler) MessageHandler(s *discordgo.Session, m *discordgo.MessageCreate) {
	if s.State == nil || s.State.User == nil {
		return
	}
	h.handleMessage(s, s.State.User.ID, m.Message)
}

func (h *Handler) handleMessage(s Session, botID string, m *discordgo.Message) {
	// Ignore all messages created by bots, including this one
	if m.Author == nil || m.Author.ID == botID || m.Author.Bot {
		return
	}

	prefix := h.commands.Prefix()
	if !strings.HasPrefix(m.Content, prefix) {
		for _, mention := range m.Mentions {
			if mention.ID == botID {
				h.reply(s, m.ChannelID, commands.Text("Use `"+prefix+"help` to see what I can do."))
				return
			}
		}
		return
	}

	req, ok := parseMessage(strings.TrimPrefix(m.Content, prefix))
	if !ok {
		return
	}
	req.userID = m.Author.ID

	if req.group == "key" && req.sub == "add" {
		// the key should not stay visible in the channel
		if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
			h.logger.Debug("could not delete key message", zap.String("channel_id", m.ChannelID), zap.Error(err))
		}
	}

	if req.group == "character" && (req.sub == "list" || req.sub == "gear" || req.sub == "birthdays") {
		if err := s.ChannelTyping(m.ChannelID); err != nil {
			h.logger.Debug("typing indicator failed", zap.Error(err))
		}
	}

	h.reply(s, m.ChannelID, h.execute(req))
}

func (h *Handler) reply(s Session, channelID string, resp *commands.Response) {
	if err := commands.Send(&commands.ChannelSink{Session: s, ChannelID: channelID}, resp); err != nil {
		h.logger.Error("failed to send response", zap.String("channel_id", channelID), zap.Error(err))
	}
}

// parseMessage splits "character gear Dread Nought" into group, subcommand and argument
func parseMessage(content string) (request, bool) {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return request{}, false
	}

	req := request{group: strings.ToLower(fields[0])}
	switch req.group {
	case "character", "key":
		if len(fields) > 1 {
			req.sub = strings.ToLower(fields[1])
		}
		if len(fields) > 2 {
			req.arg = strings.Join(fields[2:], " ")
		}
	}
	return req, true
}
