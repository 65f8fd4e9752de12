package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robalyx/airlock/internal/checker"
	"github.com/robalyx/airlock/internal/review"
	"github.com/robalyx/airlock/pkg/utils"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// RepositoryVersion is the repository version tag for config file references.
const RepositoryVersion = "v0.1.0"

// Current version of the config file.
const (
	CurrentCommonVersion = 1
	CurrentBotVersion    = 1
)

// Config represents the entire application configuration.
type Config struct {
	Common CommonConfig
	Bot    BotConfig
}

// CommonConfig contains configuration shared by every command.
type CommonConfig struct {
	// Version of the common config.
	Version int   `koanf:"version"`
	Debug   Debug `koanf:"debug"`
	Redis   Redis `koanf:"redis"`
	Retry   Retry `koanf:"retry"`
}

// BotConfig contains Discord bot specific configuration.
type BotConfig struct {
	// Version of the bot config.
	Version   int       `koanf:"version"`
	Discord   Discord   `koanf:"discord"`
	Detection Detection `koanf:"detection"`
	Review    Review    `koanf:"review"`
	Export    Export    `koanf:"export"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
	// Maximum lines per log file.
	MaxLogLines int `koanf:"max_log_lines"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Use Redis for review session locks instead of the in-process locker.
	Enabled bool `koanf:"enabled"`
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
}

// Retry contains retry configuration.
type Retry struct {
	// Maximum retry attempts.
	MaxRetries uint64 `koanf:"max_retries"`
	// Initial retry delay in milliseconds.
	Delay int `koanf:"delay"`
	// Maximum retry delay in milliseconds.
	MaxDelay int `koanf:"max_delay"`
	// Total retry budget in milliseconds.
	MaxElapsed int `koanf:"max_elapsed"`
}

// Discord contains Discord bot configuration.
type Discord struct {
	// Discord bot token for authentication.
	Token string `koanf:"token"`
	// Guild for command registration. Commands are registered globally when zero.
	GuildID uint64 `koanf:"guild_id"`
	// Role allowed to run moderation commands besides administrators.
	ModeratorRoleID uint64 `koanf:"moderator_role_id"`
}

// Detection contains the heuristic thresholds.
type Detection struct {
	// Accounts younger than this many days are flagged.
	NewAccountDays int `koanf:"new_account_days"`
	// Members who joined within this many days are flagged.
	RecentJoinDays int `koanf:"recent_join_days"`
	// Exact-pair cohorts must be larger than this.
	CohortThreshold int `koanf:"cohort_threshold"`
	// Sliding-window proximity in hours.
	WindowHours int `koanf:"window_hours"`
	// Sliding-window cohorts must be larger than this.
	WindowMinSize int `koanf:"window_min_size"`
	// Skip bot accounts.
	IgnoreBots bool `koanf:"ignore_bots"`
	// File name of the avatar blocklist, resolved against the config paths.
	AvatarBlocklist string `koanf:"avatar_blocklist"`
}

// Review contains the confirmation workflow settings.
type Review struct {
	// Decision timeout for single-member rounds in seconds.
	SingleTimeout int `koanf:"single_timeout"`
	// Decision timeout for bulk rounds in seconds.
	BulkTimeout int `koanf:"bulk_timeout"`
	// Members per fixed-size batch.
	BatchSize int `koanf:"batch_size"`
	// Concurrent ban or kick calls per round.
	ApplyConcurrency int `koanf:"apply_concurrency"`
	// Minimum spacing between ban or kick calls in milliseconds.
	RequestInterval int `koanf:"request_interval"`
	// Random extra spacing in milliseconds.
	RequestJitter int `koanf:"request_jitter"`
	// Review lock lifetime in minutes.
	SessionTTL int `koanf:"session_ttl"`
}

// Export contains audit-trail settings.
type Export struct {
	// Write an audit file for every scan with flagged members.
	Enabled bool `koanf:"enabled"`
	// Output directory.
	Dir string `koanf:"dir"`
	// Formats to write (json, csv, sqlite).
	Formats []string `koanf:"formats"`
}

// CheckerConfig converts the detection section into classifier thresholds.
// Zero values fall back to the defaults.
func (d *Detection) CheckerConfig() checker.Config {
	cfg := checker.DefaultConfig()
	cfg.IgnoreBots = d.IgnoreBots

	if d.NewAccountDays > 0 {
		cfg.NewAccountAge = time.Duration(d.NewAccountDays) * 24 * time.Hour
	}
	if d.RecentJoinDays > 0 {
		cfg.RecentJoinAge = time.Duration(d.RecentJoinDays) * 24 * time.Hour
	}
	if d.CohortThreshold > 0 {
		cfg.CohortThreshold = d.CohortThreshold
	}
	if d.WindowHours > 0 {
		cfg.WindowInterval = time.Duration(d.WindowHours) * time.Hour
	}
	if d.WindowMinSize > 0 {
		cfg.WindowMinSize = d.WindowMinSize
	}

	return cfg
}

// ReviewConfig converts the review section into workflow settings.
// Zero values fall back to the defaults.
func (r *Review) ReviewConfig() review.Config {
	cfg := review.DefaultConfig()

	if r.SingleTimeout > 0 {
		cfg.SingleTimeout = time.Duration(r.SingleTimeout) * time.Second
	}
	if r.BulkTimeout > 0 {
		cfg.BulkTimeout = time.Duration(r.BulkTimeout) * time.Second
	}
	if r.BatchSize > 0 {
		cfg.BatchSize = r.BatchSize
	}
	if r.ApplyConcurrency > 0 {
		cfg.ApplyConcurrency = r.ApplyConcurrency
	}
	if r.SessionTTL > 0 {
		cfg.SessionTTL = time.Duration(r.SessionTTL) * time.Minute
	}

	return cfg
}

// Pacing returns the ban and kick request spacing and its jitter.
func (r *Review) Pacing() (interval, jitter time.Duration) {
	return time.Duration(r.RequestInterval) * time.Millisecond, time.Duration(r.RequestJitter) * time.Millisecond
}

// RetryOptions converts the retry section into backoff settings.
func (r *Retry) RetryOptions() utils.RetryOptions {
	opts := utils.DefaultRetryOptions()

	if r.MaxRetries > 0 {
		opts.MaxRetries = r.MaxRetries
	}
	if r.Delay > 0 {
		opts.InitialInterval = time.Duration(r.Delay) * time.Millisecond
	}
	if r.MaxDelay > 0 {
		opts.MaxInterval = time.Duration(r.MaxDelay) * time.Millisecond
	}
	if r.MaxElapsed > 0 {
		opts.MaxElapsedTime = time.Duration(r.MaxElapsed) * time.Millisecond
	}

	return opts
}

// Paths returns the directories searched for config files, in priority order.
func Paths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return []string{
		".airlock",
		homeDir + "/.airlock/config",
		"/etc/airlock/config",
		"/app/config",
		"config",
		".",
	}, nil
}

// LoadConfig loads the configuration from the first path holding each file.
// It returns the config and the directory the first file was found in.
func LoadConfig() (*Config, string, error) {
	configPaths, err := Paths()
	if err != nil {
		return nil, "", err
	}

	return LoadConfigFrom(configPaths)
}

// LoadConfigFrom loads common.toml and bot.toml from the given search paths.
// Each file is parsed on its own and unmarshaled into its section of Config.
func LoadConfigFrom(configPaths []string) (*Config, string, error) {
	config := Config{
		Common: CommonConfig{
			Debug: Debug{LogLevel: "info", MaxLogsToKeep: 10, MaxLogLines: 100000},
			Redis: Redis{Host: "localhost", Port: 6379},
		},
		Bot: BotConfig{
			Detection: Detection{IgnoreBots: true},
			Export:    Export{Dir: "exports"},
		},
	}

	var usedConfigPath string

	configFiles := []struct {
		name   string
		target any
	}{
		{name: "common", target: &config.Common},
		{name: "bot", target: &config.Bot},
	}
	for _, configFile := range configFiles {
		k := koanf.New(".")
		configLoaded := false

		for _, path := range configPaths {
			configPath := fmt.Sprintf("%s/%s.toml", path, configFile.name)
			if _, err := os.Stat(configPath); err != nil {
				continue
			}

			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, "", fmt.Errorf("failed to parse %s: %w", configPath, err)
			}

			configLoaded = true
			if usedConfigPath == "" {
				usedConfigPath = path
			}

			break
		}

		if !configLoaded {
			return nil, "", fmt.Errorf("%w: %s.toml", ErrConfigFileNotFound, configFile.name)
		}

		if err := k.Unmarshal("", configFile.target); err != nil {
			return nil, "", fmt.Errorf("error unmarshaling %s.toml: %w", configFile.name, err)
		}
	}

	// Check versions for each config file
	if err := checkConfigVersion("common", config.Common.Version, CurrentCommonVersion); err != nil {
		return nil, "", err
	}

	if err := checkConfigVersion("bot", config.Bot.Version, CurrentBotVersion); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion validates the config version and returns appropriate error if mismatched.
func checkConfigVersion(name string, current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s.toml", ErrConfigVersionMissing, name)
	}

	if current != expected {
		return fmt.Errorf(
			"%w: %s.toml (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/robalyx/airlock/tree/%s/config/%s.toml",
			ErrConfigVersionMismatch,
			name,
			current,
			expected,
			RepositoryVersion,
			name,
		)
	}

	return nil
}
