// Package cooldown rate limits commands per invoking user.
package cooldown

import (
	"context"
	"time"
)

// Limiter grants at most one acquisition of a key per window. A positive retryAfter
// means the key is still cooling down.
type Limiter interface {
	Acquire(ctx context.Context, key string, window time.Duration) (retryAfter time.Duration, err error)
}

// DefaultWindows are the per-command cooldowns. Commands without an entry are unlimited.
var DefaultWindows = map[string]time.Duration{
	"info": 5 * time.Second,
	"list": 15 * time.Second,
	"gear": 10 * time.Second,
}

// Cooldowns applies per-command windows on top of a Limiter
type Cooldowns struct {
	limiter Limiter
	windows map[string]time.Duration
}

// New creates Cooldowns. A nil windows map uses DefaultWindows.
func New(limiter Limiter, windows map[string]time.Duration) *Cooldowns {
	if windows == nil {
		windows = DefaultWindows
	}
	return &Cooldowns{limiter: limiter, windows: windows}
}

// Check records an invocation of command by userID and reports how long the user
// must wait when the previous one is still within the window.
func (c *Cooldowns) Check(ctx context.Context, command, userID string) (time.Duration, error) {
	window, ok := c.windows[command]
	if !ok || window <= 0 {
		return 0, nil
	}
	return c.limiter.Acquire(ctx, Key(command, userID), window)
}

// Key is the storage key of one user's cooldown on one command
func Key(command, userID string) string {
	return "cooldown:" + command + ":" + userID
}
