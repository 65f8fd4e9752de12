package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robalyx/airlock/internal/export/types"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Exporter writes audit records to SQLite databases.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the document to <name>.db with a scans table and a members table.
func (e *Exporter) Export(name string, doc *types.Document) (path string, err error) {
	path = filepath.Join(e.outDir, name+".db")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to remove existing file %s: %w", path, err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return "", fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	err = sqlitex.ExecuteScript(conn, `
		CREATE TABLE scan (
			guild_id TEXT NOT NULL,
			scanned_at TEXT NOT NULL,
			grouping_mode TEXT NOT NULL,
			total INTEGER NOT NULL,
			cohorts INTEGER NOT NULL
		);
		CREATE TABLE members (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			display_name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			joined_at TEXT NOT NULL,
			has_avatar INTEGER NOT NULL,
			cohort_key TEXT NOT NULL,
			signals TEXT NOT NULL,
			reasons TEXT NOT NULL
		);
	`, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create tables: %w", err)
	}

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer endFn(&err)

	err = sqlitex.Execute(conn,
		"INSERT INTO scan (guild_id, scanned_at, grouping_mode, total, cohorts) VALUES (?, ?, ?, ?, ?)",
		&sqlitex.ExecOptions{
			Args: []any{doc.GuildID, doc.ScannedAt, doc.Grouping, doc.Total, doc.Cohorts},
		})
	if err != nil {
		return "", fmt.Errorf("failed to insert scan: %w", err)
	}

	for _, record := range doc.Members {
		err = sqlitex.Execute(conn, `
			INSERT INTO members (id, name, display_name, created_at, joined_at, has_avatar, cohort_key, signals, reasons)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, &sqlitex.ExecOptions{
			Args: []any{
				record.ID, record.Name, record.DisplayName, record.CreatedAt, record.JoinedAt,
				boolToInt(record.HasAvatar), record.CohortKey,
				strings.Join(record.Signals, ","), strings.Join(record.Reasons, "; "),
			},
		})
		if err != nil {
			return "", fmt.Errorf("failed to insert member %s: %w", record.ID, err)
		}
	}

	return path, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
