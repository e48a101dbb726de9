package database

import (
	"context"
	"time"

	"github.com/latoulicious/tyria/pkg/gw2"
)

// ReferenceRepository caches slow-changing API reference data.
// Lookups return only live entries; absent ids are simply missing from the result.
type ReferenceRepository interface {
	// Item operations
	GetItems(ctx context.Context, ids []int) (map[int]gw2.Item, error)
	CacheItems(ctx context.Context, items []gw2.Item, ttl time.Duration) error

	// Item stat operations
	GetItemStats(ctx context.Context, ids []int) (map[int]gw2.ItemStat, error)
	CacheItemStats(ctx context.Context, stats []gw2.ItemStat, ttl time.Duration) error

	// Title and guild operations
	GetTitle(ctx context.Context, id int) (*gw2.Title, error)
	CacheTitle(ctx context.Context, title *gw2.Title, ttl time.Duration) error
	GetGuild(ctx context.Context, id string) (*gw2.Guild, error)
	CacheGuild(ctx context.Context, guild *gw2.Guild, ttl time.Duration) error

	// Maintenance
	CleanExpiredCache(ctx context.Context) (int64, error)
	GetCacheStats(ctx context.Context) (*CacheStats, error)
}

// KeyRepository stores the API key each Discord user registered
type KeyRepository interface {
	GetKey(ctx context.Context, userID string) (*gw2.APIKey, error)
	SaveKey(ctx context.Context, key *gw2.APIKey) error
	DeleteKey(ctx context.Context, userID string) (bool, error)
}
