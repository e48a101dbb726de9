package database

import (
	"context"
	"testing"

	"github.com/latoulicious/tyria/pkg/gw2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(userID string) *gw2.APIKey {
	return &gw2.APIKey{
		UserID:      userID,
		Key:         "ABCD-EFGH",
		Name:        "bot key",
		Permissions: []string{"account", "characters"},
	}
}

func TestKeyRepository_SaveGetDelete(t *testing.T) {
	repo := setupTestDatabase(t).KeyRepository()
	ctx := context.Background()

	missing, err := repo.GetKey(ctx, "42")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.SaveKey(ctx, testKey("42")))

	key, err := repo.GetKey(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, "42", key.UserID)
	assert.Equal(t, "bot key", key.Name)
	assert.Equal(t, []string{"account", "characters"}, key.Permissions)

	deleted, err := repo.DeleteKey(ctx, "42")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteKey(ctx, "42")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestKeyRepository_SaveReplaces(t *testing.T) {
	repo := setupTestDatabase(t).KeyRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveKey(ctx, testKey("42")))

	replacement := testKey("42")
	replacement.Key = "WXYZ-0000"
	replacement.Permissions = []string{"account"}
	require.NoError(t, repo.SaveKey(ctx, replacement))

	key, err := repo.GetKey(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "WXYZ-0000", key.Key)
	assert.Equal(t, []string{"account"}, key.Permissions)
}

func TestKeyRepository_RejectsIncompleteKeys(t *testing.T) {
	repo := setupTestDatabase(t).KeyRepository()
	ctx := context.Background()

	assert.ErrorIs(t, repo.SaveKey(ctx, nil), ErrInvalidRecord)
	assert.ErrorIs(t, repo.SaveKey(ctx, &gw2.APIKey{UserID: "1"}), ErrInvalidRecord)
	assert.ErrorIs(t, repo.SaveKey(ctx, &gw2.APIKey{Key: "k"}), ErrInvalidRecord)
}
