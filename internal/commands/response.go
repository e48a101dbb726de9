package commands

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// MaxMessageLength is the longest plain message Discord accepts
const MaxMessageLength = 2000

// EmbedPermissionNotice replaces an embed the channel refused
const EmbedPermissionNotice = "Need permission to embed links"

// Response is what a command answers with: plain content, an embed, or both
type Response struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// Text creates a plain text response
func Text(content string) *Response {
	return &Response{Content: content}
}

// Messenger is the subset of *discordgo.Session commands write through
type Messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Sink delivers a response to where the command was invoked
type Sink interface {
	SendText(content string) error
	SendEmbed(embed *discordgo.MessageEmbed) error
}

// ChannelSink answers in a text channel
type ChannelSink struct {
	Session   Messenger
	ChannelID string
}

// SendText implements Sink
func (c *ChannelSink) SendText(content string) error {
	_, err := c.Session.ChannelMessageSend(c.ChannelID, content)
	return err
}

// SendEmbed implements Sink
func (c *ChannelSink) SendEmbed(embed *discordgo.MessageEmbed) error {
	_, err := c.Session.ChannelMessageSendEmbed(c.ChannelID, embed)
	return err
}

// InteractionSink answers by editing a deferred interaction response
type InteractionSink struct {
	Session     Messenger
	Interaction *discordgo.Interaction
}

// SendText implements Sink
func (i *InteractionSink) SendText(content string) error {
	_, err := i.Session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	return err
}

// SendEmbed implements Sink
func (i *InteractionSink) SendEmbed(embed *discordgo.MessageEmbed) error {
	embeds := []*discordgo.MessageEmbed{embed}
	_, err := i.Session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &embeds,
	})
	return err
}

// Send delivers resp. Text is capped at MaxMessageLength; an embed refused for missing
// permissions is replaced by EmbedPermissionNotice.
func Send(sink Sink, resp *Response) error {
	if resp == nil {
		return nil
	}

	if resp.Content != "" {
		if err := sink.SendText(Truncate(resp.Content, MaxMessageLength)); err != nil {
			return err
		}
	}

	if resp.Embed != nil {
		err := sink.SendEmbed(resp.Embed)
		if err != nil && IsMissingPermissions(err) {
			return sink.SendText(EmbedPermissionNotice)
		}
		return err
	}
	return nil
}

// IsMissingPermissions reports whether Discord rejected a request as forbidden
func IsMissingPermissions(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeMissingPermissions {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden
}

// Truncate shortens s to at most limit characters
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// CodeBlock renders header followed by lines in a code block, dropping trailing lines
// that would push the message past MaxMessageLength.
func CodeBlock(header string, lines []string) string {
	const fence = "```"

	var b strings.Builder
	b.WriteString(header)
	b.WriteString(fence)
	length := utf8.RuneCountInString(header) + 2*len(fence)

	for _, line := range lines {
		n := utf8.RuneCountInString(line) + 1
		if length+n > MaxMessageLength {
			break
		}
		b.WriteString("\n")
		b.WriteString(line)
		length += n
	}

	b.WriteString(fence)
	return b.String()
}
