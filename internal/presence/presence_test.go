package presence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUpdater struct {
	mutex   sync.Mutex
	updates []discordgo.UpdateStatusData
	err     error
}

func (f *fakeUpdater) UpdateStatusComplex(usd discordgo.UpdateStatusData) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, usd)
	return nil
}

func (f *fakeUpdater) count() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return len(f.updates)
}

func TestUpdateDefaultPresence(t *testing.T) {
	updater := &fakeUpdater{}
	pm := NewPresenceManager(updater, func() int { return 3 }, "!", zap.NewNop())

	pm.UpdateDefaultPresence()

	require.Len(t, updater.updates, 1)
	activity := updater.updates[0].Activities[0]
	assert.Equal(t, "!help", activity.Name)
	assert.Equal(t, discordgo.ActivityTypeWatching, activity.Type)
	assert.Equal(t, "in 3 servers", activity.State)
	assert.Equal(t, "in 3 servers", pm.currentState())
}

func TestUpdateDefaultPresence_Error(t *testing.T) {
	updater := &fakeUpdater{err: errors.New("not connected")}
	pm := NewPresenceManager(updater, func() int { return 1 }, "!", zap.NewNop())

	pm.UpdateDefaultPresence()
	assert.Empty(t, pm.currentState())
}

func TestStartPeriodicUpdates(t *testing.T) {
	updater := &fakeUpdater{}
	pm := NewPresenceManager(updater, func() int { return 1 }, "!", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pm.StartPeriodicUpdates(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool { return updater.count() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestSessionGuildCount(t *testing.T) {
	session := &discordgo.Session{State: discordgo.NewState()}
	session.State.Guilds = []*discordgo.Guild{{ID: "1"}, {ID: "2"}}

	assert.Equal(t, 2, SessionGuildCount(session)())
	assert.Equal(t, 0, SessionGuildCount(&discordgo.Session{})())
}
