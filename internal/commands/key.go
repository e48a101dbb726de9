package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/latoulicious/tyria/internal/characters"
	"github.com/latoulicious/tyria/pkg/gw2"
	"go.uber.org/zap"
)

// KeyAdd verifies key against the API and registers it for the caller
func (c *Commands) KeyAdd(ctx context.Context, inv Invocation, key string) *Response {
	key = strings.TrimSpace(key)
	if key == "" {
		return c.usage("key add <key>")
	}

	info, err := c.tokens.TokenInfo(ctx, key)
	if err != nil {
		if errors.Is(err, gw2.ErrInvalidKey) || errors.Is(err, gw2.ErrBadRequest) {
			inv.logger().Info("rejected invalid key", zap.Error(err))
			return Text("That API key is invalid.")
		}
		return c.failure(inv, err)
	}

	record := &gw2.APIKey{
		UserID:      inv.UserID,
		Key:         key,
		Name:        info.Name,
		Permissions: info.Permissions,
	}
	if err := c.keys.SaveKey(ctx, record); err != nil {
		inv.logger().Error("failed to save key", zap.Error(err))
		return Text("Failed to save your API key. Please try again later.")
	}

	inv.logger().Info("key registered", zap.Strings("permissions", info.Permissions))
	msg := fmt.Sprintf("%s, your key \"%s\" was added with permissions: %s",
		inv.Mention(), info.Name, strings.Join(info.Permissions, ", "))
	if missing := record.MissingScopes([]string{characters.ScopeCharacters}); len(missing) > 0 {
		msg += "\nCharacter commands need the `characters` permission."
	}
	return Text(msg)
}

// KeyRemove forgets the caller's key
func (c *Commands) KeyRemove(ctx context.Context, inv Invocation) *Response {
	removed, err := c.keys.DeleteKey(ctx, inv.UserID)
	if err != nil {
		inv.logger().Error("failed to delete key", zap.Error(err))
		return Text("Failed to remove your API key. Please try again later.")
	}
	if !removed {
		return Text("You have no API key to remove.")
	}

	inv.logger().Info("key removed")
	return Text(inv.Mention() + ", your API key was removed.")
}
