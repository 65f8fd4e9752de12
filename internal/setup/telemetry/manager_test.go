package telemetry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/airlock/internal/setup/config"
	"github.com/robalyx/airlock/internal/setup/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestManagerGetLogger(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	for _, name := range []string{"2024-01-01_00-00-00", "2024-01-02_00-00-00", "2024-01-03_00-00-00"} {
		require.NoError(t, os.Mkdir(filepath.Join(logDir, name), 0o755))
	}

	manager := telemetry.NewManager(telemetry.ServiceScan, logDir, &config.Debug{
		LogLevel:      "info",
		MaxLogsToKeep: 2,
		MaxLogLines:   100,
	})

	log, err := manager.GetLogger()
	require.NoError(t, err)

	log.Info("scan started", zap.Uint64("guildID", 42))
	log.Debug("filtered out")
	require.NoError(t, log.Sync())
	manager.Stop()

	// Two oldest sessions are removed to make room for the new one
	sessions, err := filepath.Glob(filepath.Join(logDir, "*"))
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Contains(t, sessions, filepath.Join(logDir, "2024-01-03_00-00-00"))
	assert.Contains(t, sessions, manager.GetCurrentSessionDir())

	data, err := os.ReadFile(filepath.Join(manager.GetCurrentSessionDir(), "scan.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "scan started")
	assert.Contains(t, string(data), manager.GetInstanceID())
	assert.NotContains(t, string(data), "filtered out")
}

func TestManagerInvalidLevel(t *testing.T) {
	t.Parallel()

	manager := telemetry.NewManager(telemetry.ServiceBot, t.TempDir(), &config.Debug{LogLevel: "loud"})
	_, err := manager.GetLogger()
	require.Error(t, err)
}

func TestErrorCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		function string
		want     string
	}{
		{"github.com/robalyx/airlock/internal/review.(*Session).runRound", "review"},
		{"github.com/robalyx/airlock/internal/discord.(*Platform).ApplyAction", "discord"},
		{"github.com/robalyx/airlock/internal/checker.(*Classifier).Classify", "checker"},
		{"main.main", "application"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			ent := zapcore.Entry{Caller: zapcore.EntryCaller{Defined: true, Function: tt.function}}
			assert.Equal(t, tt.want, telemetry.ErrorCategory(ent))
		})
	}
}

func TestCoreWrite(t *testing.T) {
	t.Parallel()

	core := telemetry.NewCore(zapcore.ErrorLevel)
	log := zap.New(core)

	assert.False(t, core.Enabled(zapcore.WarnLevel))
	assert.True(t, core.Enabled(zapcore.ErrorLevel))

	// No tracer provider is installed so spans are no-ops
	log.With(zap.String("guildID", "1")).Error("ban failed", zap.Error(os.ErrPermission))
}
