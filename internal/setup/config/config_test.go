package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalyx/airlock/internal/checker"
	"github.com/robalyx/airlock/internal/review"
	"github.com/robalyx/airlock/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commonTOML = `
version = 1

[debug]
log_level = "debug"
max_logs_to_keep = 3
max_log_lines = 500

[redis]
enabled = true
host = "redis"
port = 6380

[retry]
max_retries = 5
delay = 250
max_delay = 2000
`

const botTOML = `
version = 1

[discord]
token = "token"
guild_id = 123
moderator_role_id = 456

[detection]
new_account_days = 3
cohort_threshold = 8
window_hours = 12
ignore_bots = false

[review]
single_timeout = 30
batch_size = 5
request_interval = 1500
request_jitter = 500

[export]
enabled = true
dir = "audit"
formats = ["json", "sqlite"]
`

func writeConfig(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
}

func TestLoadConfigFrom(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, map[string]string{"common.toml": commonTOML, "bot.toml": botTOML})

	cfg, usedPath, err := config.LoadConfigFrom([]string{filepath.Join(dir, "missing"), dir})
	require.NoError(t, err)
	assert.Equal(t, dir, usedPath)

	assert.Equal(t, "debug", cfg.Common.Debug.LogLevel)
	assert.Equal(t, 3, cfg.Common.Debug.MaxLogsToKeep)
	assert.True(t, cfg.Common.Redis.Enabled)
	assert.Equal(t, "redis", cfg.Common.Redis.Host)
	assert.Equal(t, 6380, cfg.Common.Redis.Port)
	assert.Equal(t, uint64(123), cfg.Bot.Discord.GuildID)
	assert.Equal(t, uint64(456), cfg.Bot.Discord.ModeratorRoleID)
	assert.True(t, cfg.Bot.Export.Enabled)
	assert.Equal(t, "audit", cfg.Bot.Export.Dir)
	assert.Equal(t, []string{"json", "sqlite"}, cfg.Bot.Export.Formats)
}

func TestLoadConfigFromDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, map[string]string{"common.toml": "version = 1\n", "bot.toml": "version = 1\n"})

	cfg, _, err := config.LoadConfigFrom([]string{dir})
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Common.Debug.LogLevel)
	assert.Equal(t, "localhost", cfg.Common.Redis.Host)
	assert.Equal(t, 6379, cfg.Common.Redis.Port)
	assert.False(t, cfg.Common.Redis.Enabled)
	assert.True(t, cfg.Bot.Detection.IgnoreBots)
	assert.Equal(t, "exports", cfg.Bot.Export.Dir)
	assert.Equal(t, checker.DefaultConfig(), cfg.Bot.Detection.CheckerConfig())
	assert.Equal(t, review.DefaultConfig(), cfg.Bot.Review.ReviewConfig())
}

func TestLoadShippedConfig(t *testing.T) {
	t.Parallel()

	shipped := filepath.Join("..", "..", "..", "config")

	cfg, usedPath, err := config.LoadConfigFrom([]string{shipped})
	require.NoError(t, err)
	assert.Equal(t, shipped, usedPath)

	assert.Equal(t, config.CurrentCommonVersion, cfg.Common.Version)
	assert.Equal(t, config.CurrentBotVersion, cfg.Bot.Version)
	assert.Equal(t, "info", cfg.Common.Debug.LogLevel)
	assert.False(t, cfg.Common.Redis.Enabled)
	assert.Equal(t, uint64(3), cfg.Common.Retry.MaxRetries)
	assert.Equal(t, 10, cfg.Bot.Review.BatchSize)
	assert.Equal(t, []string{"json"}, cfg.Bot.Export.Formats)
	assert.Equal(t, checker.DefaultConfig(), cfg.Bot.Detection.CheckerConfig())

	blocklist, err := config.LoadBlocklist(usedPath, cfg.Bot.Detection.AvatarBlocklist)
	require.NoError(t, err)
	assert.Empty(t, blocklist.Entries())
}

func TestLoadConfigFromErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "missing bot config",
			files:   map[string]string{"common.toml": "version = 1\n"},
			wantErr: config.ErrConfigFileNotFound,
		},
		{
			name:    "missing version",
			files:   map[string]string{"common.toml": "[debug]\n", "bot.toml": "version = 1\n"},
			wantErr: config.ErrConfigVersionMissing,
		},
		{
			name:    "version mismatch",
			files:   map[string]string{"common.toml": "version = 1\n", "bot.toml": "version = 9\n"},
			wantErr: config.ErrConfigVersionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.files)

			_, _, err := config.LoadConfigFrom([]string{dir})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConversions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, map[string]string{"common.toml": commonTOML, "bot.toml": botTOML})

	cfg, _, err := config.LoadConfigFrom([]string{dir})
	require.NoError(t, err)

	detection := cfg.Bot.Detection.CheckerConfig()
	assert.Equal(t, 3*24*time.Hour, detection.NewAccountAge)
	assert.Equal(t, 30*24*time.Hour, detection.RecentJoinAge)
	assert.Equal(t, 8, detection.CohortThreshold)
	assert.Equal(t, 12*time.Hour, detection.WindowInterval)
	assert.Equal(t, 3, detection.WindowMinSize)
	assert.False(t, detection.IgnoreBots)

	reviewCfg := cfg.Bot.Review.ReviewConfig()
	assert.Equal(t, 30*time.Second, reviewCfg.SingleTimeout)
	assert.Equal(t, 300*time.Second, reviewCfg.BulkTimeout)
	assert.Equal(t, 5, reviewCfg.BatchSize)
	assert.Equal(t, 1, reviewCfg.ApplyConcurrency)

	interval, jitter := cfg.Bot.Review.Pacing()
	assert.Equal(t, 1500*time.Millisecond, interval)
	assert.Equal(t, 500*time.Millisecond, jitter)

	retry := cfg.Common.Retry.RetryOptions()
	assert.Equal(t, uint64(5), retry.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, retry.InitialInterval)
	assert.Equal(t, 2*time.Second, retry.MaxInterval)
	assert.Equal(t, 30*time.Second, retry.MaxElapsedTime)
}

func TestLoadBlocklist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, map[string]string{
		"avatar_blocklist.json": `{"hashes": ["a1b2"], "urls": ["https://cdn.example.com/avatars/1/c3d4.png"]}`,
		"broken.json":           `{"hashes": [`,
	})

	t.Run("config directory", func(t *testing.T) {
		t.Parallel()

		blocklist, err := config.LoadBlocklist(dir, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a1b2", "https://cdn.example.com/avatars/1/c3d4.png"}, blocklist.Entries())
	})

	t.Run("absolute path", func(t *testing.T) {
		t.Parallel()

		blocklist, err := config.LoadBlocklist("", filepath.Join(dir, "avatar_blocklist.json"))
		require.NoError(t, err)
		assert.Len(t, blocklist.Entries(), 2)
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadBlocklist("", filepath.Join(dir, "broken.json"))
		require.Error(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, err := config.LoadBlocklist(dir, "does_not_exist_7f3a.json")
		require.ErrorIs(t, err, config.ErrBlocklistNotFound)
	})
}
