package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/latoulicious/tyria/pkg/gw2"
)

// referenceRepository implements the ReferenceRepository interface
type referenceRepository struct {
	db *sql.DB
}

// GetItems returns the live cached items among ids
func (r *referenceRepository) GetItems(ctx context.Context, ids []int) (map[int]gw2.Item, error) {
	items := make(map[int]gw2.Item, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	query := `SELECT item_id, item_data FROM item_cache
	WHERE expires_at > ? AND item_id IN (` + placeholders(len(ids)) + `)`

	rows, err := r.db.QueryContext(ctx, query, idArgs(time.Now(), ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to get cached items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan cached item: %w", err)
		}

		var item gw2.Item
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached item %d: %w", id, err)
		}
		items[id] = item
	}

	return items, rows.Err()
}

// CacheItems stores items until ttl elapses
func (r *referenceRepository) CacheItems(ctx context.Context, items []gw2.Item, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}

	expiresAt := time.Now().Add(ttl)
	return r.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO item_cache (item_id, item_data, expires_at)
		VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, item := range items {
			data, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("failed to marshal item %d: %w", item.ID, err)
			}
			if _, err := stmt.ExecContext(ctx, item.ID, string(data), expiresAt); err != nil {
				return fmt.Errorf("failed to cache item %d: %w", item.ID, err)
			}
		}
		return nil
	})
}

// GetItemStats returns the live cached stat sets among ids
func (r *referenceRepository) GetItemStats(ctx context.Context, ids []int) (map[int]gw2.ItemStat, error) {
	stats := make(map[int]gw2.ItemStat, len(ids))
	if len(ids) == 0 {
		return stats, nil
	}

	query := `SELECT stat_id, name FROM itemstat_cache
	WHERE expires_at > ? AND stat_id IN (` + placeholders(len(ids)) + `)`

	rows, err := r.db.QueryContext(ctx, query, idArgs(time.Now(), ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to get cached item stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stat gw2.ItemStat
		if err := rows.Scan(&stat.ID, &stat.Name); err != nil {
			return nil, fmt.Errorf("failed to scan cached item stat: %w", err)
		}
		stats[stat.ID] = stat
	}

	return stats, rows.Err()
}

// CacheItemStats stores stat sets until ttl elapses
func (r *referenceRepository) CacheItemStats(ctx context.Context, stats []gw2.ItemStat, ttl time.Duration) error {
	if len(stats) == 0 {
		return nil
	}

	expiresAt := time.Now().Add(ttl)
	return r.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO itemstat_cache (stat_id, name, expires_at)
		VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, stat := range stats {
			if _, err := stmt.ExecContext(ctx, stat.ID, stat.Name, expiresAt); err != nil {
				return fmt.Errorf("failed to cache item stat %d: %w", stat.ID, err)
			}
		}
		return nil
	})
}

// GetTitle retrieves a cached title, or nil when absent or expired
func (r *referenceRepository) GetTitle(ctx context.Context, id int) (*gw2.Title, error) {
	query := `
	SELECT name FROM title_cache
	WHERE title_id = ? AND expires_at > ?
	`

	title := &gw2.Title{ID: id}
	err := r.db.QueryRowContext(ctx, query, id, time.Now()).Scan(&title.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No cache found
		}
		return nil, fmt.Errorf("failed to get cached title: %w", err)
	}

	return title, nil
}

// CacheTitle stores a title until ttl elapses
func (r *referenceRepository) CacheTitle(ctx context.Context, title *gw2.Title, ttl time.Duration) error {
	if title == nil {
		return ErrInvalidRecord
	}

	query := `
	INSERT OR REPLACE INTO title_cache (title_id, name, expires_at)
	VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, title.ID, title.Name, time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("failed to cache title: %w", err)
	}

	return nil
}

// GetGuild retrieves a cached guild, or nil when absent or expired
func (r *referenceRepository) GetGuild(ctx context.Context, id string) (*gw2.Guild, error) {
	query := `
	SELECT name, tag FROM guild_cache
	WHERE guild_id = ? AND expires_at > ?
	`

	guild := &gw2.Guild{ID: id}
	err := r.db.QueryRowContext(ctx, query, id, time.Now()).Scan(&guild.Name, &guild.Tag)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No cache found
		}
		return nil, fmt.Errorf("failed to get cached guild: %w", err)
	}

	return guild, nil
}

// CacheGuild stores a guild until ttl elapses
func (r *referenceRepository) CacheGuild(ctx context.Context, guild *gw2.Guild, ttl time.Duration) error {
	if guild == nil || guild.ID == "" {
		return ErrInvalidRecord
	}

	query := `
	INSERT OR REPLACE INTO guild_cache (guild_id, name, tag, expires_at)
	VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, guild.ID, guild.Name, guild.Tag, time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("failed to cache guild: %w", err)
	}

	return nil
}

// CleanExpiredCache removes expired cache entries
func (r *referenceRepository) CleanExpiredCache(ctx context.Context) (int64, error) {
	now := time.Now()

	queries := []string{
		"DELETE FROM item_cache WHERE expires_at < ?",
		"DELETE FROM itemstat_cache WHERE expires_at < ?",
		"DELETE FROM title_cache WHERE expires_at < ?",
		"DELETE FROM guild_cache WHERE expires_at < ?",
	}

	var removed int64
	for _, query := range queries {
		result, err := r.db.ExecContext(ctx, query, now)
		if err != nil {
			return removed, fmt.Errorf("failed to clean expired cache: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil {
			removed += n
		}
	}

	return removed, nil
}

// GetCacheStats returns cache statistics
func (r *referenceRepository) GetCacheStats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{}

	queries := []struct {
		name   string
		query  string
		target *int
	}{
		{"items", "SELECT COUNT(*) FROM item_cache WHERE expires_at > ?", &stats.Items},
		{"item_stats", "SELECT COUNT(*) FROM itemstat_cache WHERE expires_at > ?", &stats.ItemStats},
		{"titles", "SELECT COUNT(*) FROM title_cache WHERE expires_at > ?", &stats.Titles},
		{"guilds", "SELECT COUNT(*) FROM guild_cache WHERE expires_at > ?", &stats.Guilds},
	}

	now := time.Now()
	for _, q := range queries {
		if err := r.db.QueryRowContext(ctx, q.query, now).Scan(q.target); err != nil {
			return nil, fmt.Errorf("failed to get cache stats for %s: %w", q.name, err)
		}
	}

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM api_keys").Scan(&stats.APIKeys); err != nil {
		return nil, fmt.Errorf("failed to get cache stats for api_keys: %w", err)
	}

	return stats, nil
}

func (r *referenceRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(now time.Time, ids []int) []any {
	args := make([]any, 0, len(ids)+1)
	args = append(args, now)
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}
