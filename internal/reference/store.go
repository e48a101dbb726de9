// Package reference resolves item, stat, title and guild ids into display names.
// Lookups are served from the SQLite cache first and fall through to the API.
package reference

import (
	"context"
	"fmt"
	"time"

	"github.com/latoulicious/tyria/pkg/database"
	"github.com/latoulicious/tyria/pkg/gw2"
	"go.uber.org/zap"
)

// API is the subset of the gw2 client used to fill cache misses
type API interface {
	Items(ctx context.Context, ids []int) ([]gw2.Item, error)
	ItemStats(ctx context.Context, ids []int) ([]gw2.ItemStat, error)
	Title(ctx context.Context, id int) (*gw2.Title, error)
	Guild(ctx context.Context, id string) (*gw2.Guild, error)
}

// Store is the cache-backed reference data lookup
type Store struct {
	repo   database.ReferenceRepository
	api    API
	ttl    time.Duration
	logger *zap.Logger
}

// NewStore creates a reference store
func NewStore(repo database.ReferenceRepository, api API, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		repo:   repo,
		api:    api,
		ttl:    ttl,
		logger: logger,
	}
}

// Items resolves every id in one cache query and at most one API batch.
// Ids unknown to the API are absent from the result.
func (s *Store) Items(ctx context.Context, ids []int) (map[int]gw2.Item, error) {
	ids = uniqueIDs(ids)

	items, err := s.repo.GetItems(ctx, ids)
	if err != nil {
		s.logger.Warn("item cache read failed", zap.Error(err))
		items = make(map[int]gw2.Item, len(ids))
	}

	missing := missingIDs(ids, items)
	if len(missing) == 0 {
		return items, nil
	}

	fetched, err := s.api.Items(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	for _, item := range fetched {
		items[item.ID] = item
	}

	if err := s.repo.CacheItems(ctx, fetched, s.ttl); err != nil {
		s.logger.Warn("item cache write failed", zap.Error(err))
	}

	s.logger.Debug("items resolved",
		zap.Int("requested", len(ids)),
		zap.Int("fetched", len(fetched)),
	)
	return items, nil
}

// StatNames resolves stat set ids to their names
func (s *Store) StatNames(ctx context.Context, ids []int) (map[int]string, error) {
	ids = uniqueIDs(ids)

	stats, err := s.repo.GetItemStats(ctx, ids)
	if err != nil {
		s.logger.Warn("item stat cache read failed", zap.Error(err))
		stats = make(map[int]gw2.ItemStat, len(ids))
	}

	missing := missingIDs(ids, stats)
	if len(missing) > 0 {
		fetched, err := s.api.ItemStats(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch item stats: %w", err)
		}
		for _, stat := range fetched {
			stats[stat.ID] = stat
		}
		if err := s.repo.CacheItemStats(ctx, fetched, s.ttl); err != nil {
			s.logger.Warn("item stat cache write failed", zap.Error(err))
		}
	}

	names := make(map[int]string, len(stats))
	for id, stat := range stats {
		names[id] = stat.Name
	}
	return names, nil
}

// Title resolves a title id to its display text
func (s *Store) Title(ctx context.Context, id int) (string, error) {
	cached, err := s.repo.GetTitle(ctx, id)
	if err != nil {
		s.logger.Warn("title cache read failed", zap.Int("title_id", id), zap.Error(err))
	}
	if cached != nil {
		return cached.Name, nil
	}

	title, err := s.api.Title(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to fetch title %d: %w", id, err)
	}

	if err := s.repo.CacheTitle(ctx, title, s.ttl); err != nil {
		s.logger.Warn("title cache write failed", zap.Int("title_id", id), zap.Error(err))
	}
	return title.Name, nil
}

// Guild resolves a guild id to its name and tag
func (s *Store) Guild(ctx context.Context, id string) (*gw2.Guild, error) {
	cached, err := s.repo.GetGuild(ctx, id)
	if err != nil {
		s.logger.Warn("guild cache read failed", zap.String("guild_id", id), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	guild, err := s.api.Guild(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild %s: %w", id, err)
	}
	if guild.ID == "" {
		guild.ID = id
	}

	if err := s.repo.CacheGuild(ctx, guild, s.ttl); err != nil {
		s.logger.Warn("guild cache write failed", zap.String("guild_id", id), zap.Error(err))
	}
	return guild, nil
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

func missingIDs[V any](ids []int, have map[int]V) []int {
	var missing []int
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
