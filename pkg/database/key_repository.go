package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/latoulicious/tyria/pkg/gw2"
)

// keyRepository implements the KeyRepository interface
type keyRepository struct {
	db *sql.DB
}

// GetKey returns the user's key, or nil when the user never registered one
func (r *keyRepository) GetKey(ctx context.Context, userID string) (*gw2.APIKey, error) {
	query := `
	SELECT api_key, key_name, permissions FROM api_keys
	WHERE user_id = ?
	`

	key := &gw2.APIKey{UserID: userID}
	var permissions string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&key.Key, &key.Name, &permissions)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	if err := json.Unmarshal([]byte(permissions), &key.Permissions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key permissions: %w", err)
	}

	return key, nil
}

// SaveKey registers or replaces the user's key
func (r *keyRepository) SaveKey(ctx context.Context, key *gw2.APIKey) error {
	if key == nil || key.UserID == "" || key.Key == "" {
		return ErrInvalidRecord
	}

	permissions, err := json.Marshal(key.Permissions)
	if err != nil {
		return fmt.Errorf("failed to marshal key permissions: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO api_keys (user_id, api_key, key_name, permissions)
	VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, key.UserID, key.Key, key.Name, string(permissions)); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}

	return nil
}

// DeleteKey removes the user's key and reports whether one existed
func (r *keyRepository) DeleteKey(ctx context.Context, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM api_keys WHERE user_id = ?", userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete API key: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete API key: %w", err)
	}
	return n > 0, nil
}
