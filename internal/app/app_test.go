package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"questforge/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "app.db"),
		TimeZone:     "UTC",
		Email:        config.EmailConfig{Region: "us-east-1"},
		Game:         config.DefaultGameConfig(),
	}
}

func TestNewWithSQLite(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t), zap.NewNop(), Options{})
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.DB)
	assert.False(t, a.Email.IsEnabled())

	res, err := a.Progress.CompleteQuest(ctx, "u1", "h1")
	require.NoError(t, err)
	assert.Equal(t, 20, res.XPGained)

	daily, err := a.Progress.DailyQuests(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, daily, 3)
}

func TestNewInMemory(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Game.DailyQuestsCount = 5

	a, err := New(ctx, cfg, nil, Options{Memory: true})
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	daily, err := a.Progress.DailyQuests(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, daily, 5)
}

func TestNewRejectsUnknownDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseType = "oracle"
	_, err := New(context.Background(), cfg, nil, Options{})
	assert.Error(t, err)
}
