package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/robalyx/airlock/internal/export/types"
)

// Exporter writes audit records to csv files.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the document's members to <name>.csv and returns the file path.
func (e *Exporter) Export(name string, doc *types.Document) (string, error) {
	path := filepath.Join(e.outDir, name+".csv")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to remove existing file %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{
		"id", "name", "display_name", "created_at", "joined_at", "has_avatar", "cohort_key", "reasons",
	}); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range doc.Members {
		if err := writer.Write([]string{
			record.ID,
			record.Name,
			record.DisplayName,
			record.CreatedAt,
			record.JoinedAt,
			strconv.FormatBool(record.HasAvatar),
			record.CohortKey,
			strings.Join(record.Reasons, "; "),
		}); err != nil {
			return "", fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv file: %w", err)
	}

	return path, nil
}
