package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Help lists the available commands
func (c *Commands) Help() *Response {
	p := c.prefix
	embed := &discordgo.MessageEmbed{
		Title:       "Tyria",
		Description: "Guild Wars 2 character commands. Register an API key with the `characters` permission first.",
		Color:       0xAA0000,
		Timestamp:   c.now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Tyria | Keys are stored only to answer your own commands",
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Character Commands",
				Value: strings.Join([]string{
					fmt.Sprintf("• `%scharacter info <name>` - Summary of one of your characters", p),
					fmt.Sprintf("• `%scharacter list` - List your characters", p),
					fmt.Sprintf("• `%scharacter gear <name>` - Equipment of one of your characters", p),
					fmt.Sprintf("• `%scharacter birthdays` - Days until each character's birthday", p),
				}, "\n"),
				Inline: false,
			},
			{
				Name: "Key Commands",
				Value: strings.Join([]string{
					fmt.Sprintf("• `%skey add <key>` - Register your Guild Wars 2 API key", p),
					fmt.Sprintf("• `%skey remove` - Forget your API key", p),
				}, "\n"),
				Inline: false,
			},
			{
				Name: "Information Commands",
				Value: strings.Join([]string{
					fmt.Sprintf("• `%scache` - Reference cache statistics", p),
					fmt.Sprintf("• `%shelp` / `%sh` - Show this help message", p, p),
				}, "\n"),
				Inline: false,
			},
		},
	}
	return &Response{Embed: embed}
}
