package presence

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// StatusUpdater is the subset of *discordgo.Session used to publish presence
type StatusUpdater interface {
	UpdateStatusComplex(usd discordgo.UpdateStatusData) error
}

// PresenceManager manages the bot's presence
type PresenceManager struct {
	session    StatusUpdater
	guildCount func() int
	prefix     string
	logger     *zap.Logger

	mutex   sync.RWMutex
	current string
}

// NewPresenceManager creates a new presence manager. guildCount reports how many
// servers the bot is in.
func NewPresenceManager(session StatusUpdater, guildCount func() int, prefix string, logger *zap.Logger) *PresenceManager {
	return &PresenceManager{
		session:    session,
		guildCount: guildCount,
		prefix:     prefix,
		logger:     logger,
	}
}

// SessionGuildCount counts the guilds in a session's state cache
func SessionGuildCount(s *discordgo.Session) func() int {
	return func() int {
		if s.State == nil {
			return 0
		}
		s.State.RLock()
		defer s.State.RUnlock()
		return len(s.State.Guilds)
	}
}

// UpdateDefaultPresence shows the help command and the number of servers
func (pm *PresenceManager) UpdateDefaultPresence() {
	guilds := pm.guildCount()

	presence := discordgo.UpdateStatusData{
		Status: "online",
		Activities: []*discordgo.Activity{
			{
				Name:  pm.prefix + "help",
				Type:  discordgo.ActivityTypeWatching,
				State: "in " + strconv.Itoa(guilds) + " servers",
			},
		},
	}

	if err := pm.session.UpdateStatusComplex(presence); err != nil {
		pm.logger.Warn("failed to update bot presence", zap.Error(err))
		return
	}

	pm.mutex.Lock()
	pm.current = presence.Activities[0].State
	pm.mutex.Unlock()
}

// currentState returns the last presence state published
func (pm *PresenceManager) currentState() string {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	return pm.current
}

// StartPeriodicUpdates refreshes the presence every interval until ctx is done
func (pm *PresenceManager) StartPeriodicUpdates(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pm.UpdateDefaultPresence()
			}
		}
	}()
}
