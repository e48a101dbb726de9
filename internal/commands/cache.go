package commands

import (
	"context"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// CacheStatus reports how many reference entries are cached and when they are next cleaned
func (c *Commands) CacheStatus(ctx context.Context, inv Invocation) *Response {
	if c.cache == nil {
		return Text("Cache statistics are not available.")
	}

	stats, err := c.cache.GetCacheStats(ctx)
	if err != nil {
		inv.logger().Error("failed to read cache stats", zap.Error(err))
		return Text("Failed to read cache statistics.")
	}

	nextRun := "Not scheduled"
	schedule := "-"
	if c.cleanup != nil {
		if next := c.cleanup.GetNextRun(); !next.IsZero() {
			nextRun = next.UTC().Format("2006-01-02 15:04:05") + " UTC"
		}
		schedule = "`" + c.cleanup.GetSchedule() + "`"
		if c.cleanup.IsRunning() {
			nextRun = "Running now"
		}
	}

	database := "-"
	if c.health != nil {
		database = "Reachable"
		if err := c.health.Ping(ctx); err != nil {
			inv.logger().Warn("database ping failed", zap.Error(err))
			database = "Unreachable"
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Reference Cache",
		Description: "Cached Guild Wars 2 reference data",
		Color:       0x7289DA,
		Timestamp:   c.now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Items", Value: strconv.Itoa(stats.Items), Inline: true},
			{Name: "Item stats", Value: strconv.Itoa(stats.ItemStats), Inline: true},
			{Name: "Titles", Value: strconv.Itoa(stats.Titles), Inline: true},
			{Name: "Guilds", Value: strconv.Itoa(stats.Guilds), Inline: true},
			{Name: "Registered keys", Value: strconv.Itoa(stats.APIKeys), Inline: true},
			{Name: "Database", Value: database, Inline: true},
			{Name: "Cleanup schedule", Value: schedule, Inline: false},
			{Name: "Next cleanup", Value: nextRun, Inline: false},
		},
	}
	return &Response{Embed: embed}
}
