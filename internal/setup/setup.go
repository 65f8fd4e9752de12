package setup

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robalyx/airlock/internal/checker"
	"github.com/robalyx/airlock/internal/export"
	"github.com/robalyx/airlock/internal/redis"
	"github.com/robalyx/airlock/internal/review"
	"github.com/robalyx/airlock/internal/setup/config"
	"github.com/robalyx/airlock/internal/setup/telemetry"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config      // Application configuration
	ConfigDir    string              // Directory the config was loaded from
	Logger       *zap.Logger         // Main application logger
	LogManager   *telemetry.Manager  // Log management system
	RedisManager *redis.Manager      // Redis connection manager, nil when disabled
	Locker       review.Locker       // One-review-per-guild lock
	Classifier   *checker.Classifier // Heuristic classifier
	Audit        review.AuditWriter  // Audit trail writer, nil when disabled
	Exporter     *export.Exporter    // Concrete audit exporter, nil when disabled
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, serviceType telemetry.ServiceType, logDir string) (*App, error) {
	// Load app configuration
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(serviceType, logDir, &cfg.Common.Debug)

	logger, err := logManager.GetLogger()
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:     cfg,
		ConfigDir:  configDir,
		Logger:     logger,
		LogManager: logManager,
	}

	// Redis backs the review lock when enabled so several bot instances share it
	if cfg.Common.Redis.Enabled {
		app.RedisManager = redis.NewManager(&cfg.Common.Redis, logger)

		client, err := app.RedisManager.GetClient(redis.LockDBIndex)
		if err != nil {
			app.Cleanup(ctx)
			return nil, err
		}

		app.Locker = redis.NewSessionLocker(client, logger)
	} else {
		app.Locker = review.NewLocalLocker()
	}

	blocklist, err := loadBlocklist(configDir, &cfg.Bot.Detection, logger)
	if err != nil {
		app.Cleanup(ctx)
		return nil, err
	}

	app.Classifier = checker.NewClassifier(cfg.Bot.Detection.CheckerConfig(), blocklist, logger)

	if cfg.Bot.Export.Enabled {
		formats, err := export.ParseFormats(cfg.Bot.Export.Formats)
		if err != nil {
			app.Cleanup(ctx)
			return nil, err
		}

		app.Exporter = export.New(cfg.Bot.Export.Dir, formats, logger)
		app.Audit = app.Exporter
	}

	logger.Info("Application initialized",
		zap.String("service", serviceType.String()),
		zap.String("configDir", configDir),
		zap.Bool("redisLock", cfg.Common.Redis.Enabled),
		zap.Bool("export", cfg.Bot.Export.Enabled),
		zap.Int("blocklist", blocklist.Len()))

	return app, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup(_ context.Context) {
	// Close Redis connections before the log files they report to
	if s.RedisManager != nil {
		s.RedisManager.Close()
	}

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	s.LogManager.Stop()
}

// loadBlocklist loads the avatar blocklist. A missing default file is not an
// error but an explicitly configured one is.
func loadBlocklist(configDir string, detection *config.Detection, logger *zap.Logger) (*checker.Blocklist, error) {
	file, err := config.LoadBlocklist(configDir, detection.AvatarBlocklist)
	if err != nil {
		if detection.AvatarBlocklist == "" && errors.Is(err, config.ErrBlocklistNotFound) {
			logger.Info("No avatar blocklist found, blocklist signal disabled")
			return checker.NewBlocklist(nil), nil
		}
		return nil, fmt.Errorf("failed to load avatar blocklist: %w", err)
	}

	return checker.NewBlocklist(file.Entries()), nil
}
