package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/tyria/internal/characters"
)

// CharacterInfo shows one character's summary
func (c *Commands) CharacterInfo(ctx context.Context, inv Invocation, name string) *Response {
	if strings.TrimSpace(name) == "" {
		return c.usage("character info <name>")
	}

	summary, err := c.characters.Info(ctx, inv.UserID, name)
	if err != nil {
		return c.lookupFailure(inv, err)
	}
	return &Response{Embed: infoEmbed(summary)}
}

// CharacterList lists the caller's characters
func (c *Commands) CharacterList(ctx context.Context, inv Invocation) *Response {
	list, err := c.characters.List(ctx, inv.UserID)
	if err != nil {
		return c.failure(inv, err)
	}

	lines := make([]string, 0, len(list))
	for _, character := range list {
		lines = append(lines, character.Name+" ("+character.Profession+")")
	}
	return Text(CodeBlock(inv.Mention()+", your characters: ", lines))
}

// CharacterGear shows the equipment of one character
func (c *Commands) CharacterGear(ctx context.Context, inv Invocation, name string) *Response {
	if strings.TrimSpace(name) == "" {
		return c.usage("character gear <name>")
	}

	summary, err := c.characters.Gear(ctx, inv.UserID, name)
	if err != nil {
		return c.lookupFailure(inv, err)
	}
	return &Response{Embed: gearEmbed(summary)}
}

// CharacterBirthdays counts down to each character's next anniversary
func (c *Commands) CharacterBirthdays(ctx context.Context, inv Invocation) *Response {
	entries, err := c.characters.Birthdays(ctx, inv.UserID)
	if err != nil {
		return c.failure(inv, err)
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Line())
	}
	return Text(CodeBlock(inv.Mention()+", days until each of your characters birthdays:", lines))
}

// lookupFailure answers an unknown character name locally and reports everything else
func (c *Commands) lookupFailure(inv Invocation, err error) *Response {
	if errors.Is(err, characters.ErrCharacterNotFound) {
		inv.logger().Debug("character not found")
		return Text(NotFoundMessage)
	}
	return c.failure(inv, err)
}

func infoEmbed(summary *characters.InfoSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Description: summary.Title,
		Color:       summary.Color,
		Author:      &discordgo.MessageEmbedAuthor{Name: summary.Name},
		Footer:      &discordgo.MessageEmbedFooter{Text: summary.Footer()},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Created at", Value: summary.Created, Inline: true},
			{Name: "Played for", Value: summary.PlayedFor, Inline: true},
		},
	}
	if summary.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: summary.Icon}
	}
	if summary.Guild != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Guild",
			Value:  fmt.Sprintf("[%s] %s", summary.Guild.Tag, summary.Guild.Name),
			Inline: true,
		})
	}
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "Deaths", Value: strconv.Itoa(summary.Deaths), Inline: true},
		&discordgo.MessageEmbedField{Name: "Deaths per hour", Value: strconv.FormatFloat(summary.DeathsPerHour, 'f', 1, 64), Inline: true},
	)
	return embed
}

func gearEmbed(summary *characters.GearSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Description: "Gear",
		Color:       summary.Color,
		Author:      &discordgo.MessageEmbedAuthor{Name: summary.Name},
		Footer: &discordgo.MessageEmbedFooter{
			Text:    fmt.Sprintf("A level %d %s ", summary.Level, summary.Profession),
			IconURL: summary.Icon,
		},
	}
	for _, piece := range summary.Pieces {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   piece.Heading(),
			Value:  piece.Body(),
			Inline: false,
		})
	}
	return embed
}
