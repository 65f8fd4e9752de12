package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robalyx/airlock/internal/bot"
	"github.com/robalyx/airlock/internal/checker"
	"github.com/robalyx/airlock/internal/export"
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/robalyx/airlock/internal/report"
	"github.com/robalyx/airlock/internal/setup"
	"github.com/robalyx/airlock/internal/setup/config"
	"github.com/robalyx/airlock/internal/setup/telemetry"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	// BotLogDir specifies where bot log files are stored.
	BotLogDir = "logs/bot_logs"
	// ScanLogDir specifies where offline scan log files are stored.
	ScanLogDir = "logs/scan_logs"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "airlock",
		Usage: "Flag and review suspicious Discord server members",
		Commands: []*cli.Command{
			{
				Name:   "bot",
				Usage:  "Run the Discord bot",
				Action: runBot,
			},
			{
				Name:  "scan",
				Usage: "Classify a roster exported to a JSON file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "roster",
						Aliases:  []string{"r"},
						Usage:    "Path to the roster JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "grouping",
						Aliases: []string{"g"},
						Value:   enum.GroupingNone.String(),
						Usage:   "Cohort grouping (none, exact_pair, sliding_window)",
					},
					&cli.StringFlag{
						Name:  "now",
						Usage: "Reference time in RFC3339, defaults to the current time",
					},
					&cli.UintFlag{
						Name:  "guild",
						Usage: "Guild ID recorded in the audit trail",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Audit trail directory, overrides the config",
					},
					&cli.StringSliceFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Audit trail formats (json, csv, sqlite)",
					},
					&cli.StringFlag{
						Name:  "chart",
						Usage: "Write the roster chart PNG to this path",
					},
				},
				Action: runScan,
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// runBot starts the bot and blocks until an interrupt signal arrives.
func runBot(ctx context.Context, _ *cli.Command) error {
	app, err := setup.InitializeApp(ctx, telemetry.ServiceBot, BotLogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup(ctx)

	discordBot, err := bot.New(app)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	if err := discordBot.Start(ctx); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}

	log.Println("Bot has been started. Waiting for interrupt signal to gracefully shutdown...")

	// Wait for interrupt signal to gracefully shutdown the bot
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	closeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	discordBot.Close(closeCtx)

	return nil
}

// runScan classifies an offline roster and prints the flagged members.
func runScan(ctx context.Context, c *cli.Command) error {
	grouping, err := enum.GroupingString(c.String("grouping"))
	if err != nil {
		return fmt.Errorf("invalid grouping %q: %w", c.String("grouping"), err)
	}

	now := time.Now()
	if value := c.String("now"); value != "" {
		if now, err = time.Parse(time.RFC3339, value); err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
	}

	classifier, exporter, logger, cleanup, err := scanDependencies(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	roster, err := LoadRoster(c.String("roster"))
	if err != nil {
		return err
	}

	result := classifier.Classify(roster, now, checker.ScanOptions{Grouping: grouping})

	var files []string
	if exporter != nil {
		if files, err = exporter.Write(ctx, c.Uint("guild"), result); err != nil {
			logger.Error("Failed to write audit trail", zap.Error(err))
		}
	}

	summarizer := report.NewSummarizer(language.English)
	fmt.Println(summarizer.Summary(result, nil, files))
	for _, f := range result.Flagged {
		fmt.Printf("%d\t%s\t%s\n", f.Record.ID, f.Record.Name(), f.Reasons)
	}
	for _, file := range files {
		fmt.Printf("Wrote %s\n", file)
	}

	if path := c.String("chart"); path != "" {
		if err := writeChart(path, roster, result); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}

	return nil
}

// scanDependencies builds the classifier and exporter from the config files,
// falling back to the defaults when no config exists.
func scanDependencies(ctx context.Context, c *cli.Command) (
	*checker.Classifier, *export.Exporter, *zap.Logger, func(), error,
) {
	var (
		classifier *checker.Classifier
		exporter   *export.Exporter
		logger     *zap.Logger
		cleanup    = func() {}
	)

	app, err := setup.InitializeApp(ctx, telemetry.ServiceScan, ScanLogDir)
	switch {
	case err == nil:
		classifier, exporter, logger = app.Classifier, app.Exporter, app.Logger
		cleanup = func() { app.Cleanup(ctx) }
	case errors.Is(err, config.ErrConfigFileNotFound):
		logger = zap.NewNop()
		classifier = checker.NewClassifier(checker.DefaultConfig(), nil, logger)
	default:
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	if dir := c.String("output"); dir != "" || len(c.StringSlice("format")) > 0 {
		if dir == "" {
			dir = "exports"
		}

		formats, err := export.ParseFormats(c.StringSlice("format"))
		if err != nil {
			cleanup()
			return nil, nil, nil, nil, err
		}
		exporter = export.New(dir, formats, logger)
	}

	return classifier, exporter, logger, cleanup, nil
}

func writeChart(path string, roster []*member.Record, result *checker.ScanResult) error {
	buf, err := report.NewRosterChart(roster, result.Flagged).Build()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}
