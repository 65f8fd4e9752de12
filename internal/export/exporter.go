package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/robalyx/airlock/internal/checker"
	"github.com/robalyx/airlock/internal/export/csv"
	"github.com/robalyx/airlock/internal/export/sqlite"
	"github.com/robalyx/airlock/internal/export/types"
	"github.com/robalyx/airlock/internal/member"
	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents a supported export format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

const timestampLayout = "20060102T150405Z"

// ParseFormats validates configured format names. An empty list selects JSON only.
func ParseFormats(names []string) ([]Format, error) {
	if len(names) == 0 {
		return []Format{FormatJSON}, nil
	}

	formats := make([]Format, 0, len(names))
	for _, name := range names {
		switch format := Format(name); format {
		case FormatJSON, FormatCSV, FormatSQLite:
			formats = append(formats, format)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
		}
	}

	return formats, nil
}

// Exporter writes the audit trail of a scan in every configured format.
type Exporter struct {
	outDir  string
	formats []Format
	logger  *zap.Logger
}

// New creates a new exporter instance.
func New(outDir string, formats []Format, logger *zap.Logger) *Exporter {
	return &Exporter{
		outDir:  outDir,
		formats: formats,
		logger:  logger.Named("exporter"),
	}
}

// Write exports the flagged members of a scan and returns the written file paths.
// Nothing is written when no member was flagged.
func (e *Exporter) Write(ctx context.Context, guildID uint64, result *checker.ScanResult) ([]string, error) {
	if len(result.Flagged) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(e.outDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	doc := NewDocument(guildID, result)
	name := fmt.Sprintf("flagged_%d_%s", guildID, result.ScannedAt.UTC().Format(timestampLayout))

	paths := make([]string, 0, len(e.formats))
	for _, format := range e.formats {
		if err := ctx.Err(); err != nil {
			return paths, err
		}

		path, err := e.export(format, name, doc)
		if err != nil {
			return paths, fmt.Errorf("failed to export %s format: %w", format, err)
		}
		paths = append(paths, path)
	}

	e.logger.Info("Wrote audit trail",
		zap.Uint64("guildID", guildID),
		zap.Int("members", len(doc.Members)),
		zap.Strings("files", paths))

	return paths, nil
}

// export handles exporting data in the specified format.
func (e *Exporter) export(format Format, name string, doc *types.Document) (string, error) {
	switch format {
	case FormatJSON:
		return e.writeJSON(name, doc)
	case FormatCSV:
		return csv.New(e.outDir).Export(name, doc)
	case FormatSQLite:
		return sqlite.New(e.outDir).Export(name, doc)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (e *Exporter) writeJSON(name string, doc *types.Document) (string, error) {
	data, err := sonic.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal audit document: %w", err)
	}

	path := filepath.Join(e.outDir, name+".json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write audit document: %w", err)
	}

	return path, nil
}

// NewDocument converts a scan result into its audit document.
func NewDocument(guildID uint64, result *checker.ScanResult) *types.Document {
	doc := &types.Document{
		GuildID:   strconv.FormatUint(guildID, 10),
		ScannedAt: result.ScannedAt.UTC().Format(time.RFC3339),
		Grouping:  result.Options.Grouping.String(),
		Total:     result.Total,
		Cohorts:   result.Cohorts.Len(),
		Members:   make([]*types.Record, 0, len(result.Flagged)),
	}

	for _, f := range result.Flagged {
		doc.Members = append(doc.Members, NewRecord(f))
	}

	return doc
}

// NewRecord converts a flagged member into an audit record.
func NewRecord(f *member.Flagged) *types.Record {
	record := &types.Record{
		Name:        f.Record.Name(),
		ID:          strconv.FormatUint(f.Record.ID, 10),
		DisplayName: f.Record.DisplayName,
		HasAvatar:   f.Record.HasAvatar(),
		CohortKey:   f.CohortKey,
		Signals:     f.Reasons.Types(),
		Reasons:     f.Reasons.Messages(),
	}

	if !f.Record.CreatedAt.IsZero() {
		record.CreatedAt = f.Record.CreatedAt.UTC().Format(time.RFC3339)
	}
	if f.Record.HasJoinTime() {
		record.JoinedAt = f.Record.JoinedAt.UTC().Format(time.RFC3339)
	}

	return record
}
