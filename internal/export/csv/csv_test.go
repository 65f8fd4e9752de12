package csv_test

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	exportCSV "github.com/robalyx/airlock/internal/export/csv"
	"github.com/robalyx/airlock/internal/export/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifyCSVFile reads a CSV file and verifies its contents match the expected records.
func verifyCSVFile(t *testing.T, path string, expected []*types.Record) {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"id", "name", "display_name", "created_at", "joined_at", "has_avatar", "cohort_key", "reasons",
	}, header)

	for _, want := range expected {
		row, err := reader.Read()
		require.NoError(t, err)
		assert.Equal(t, want.ID, row[0])
		assert.Equal(t, want.Name, row[1])
		assert.Equal(t, want.DisplayName, row[2])
		assert.Equal(t, want.JoinedAt, row[4])
	}

	_, err = reader.Read()
	assert.Equal(t, io.EOF, err, "expected EOF after last record")
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		members []*types.Record
	}{
		{
			name: "basic export",
			members: []*types.Record{
				{ID: "1", Name: "alpha", DisplayName: "Alpha", CreatedAt: "2024-01-01T00:00:00Z", JoinedAt: "2024-01-05T00:00:00Z"},
				{ID: "2", Name: "beta", HasAvatar: true, Reasons: []string{"a", "b"}},
			},
		},
		{
			name:    "no members",
			members: nil,
		},
		{
			name: "special characters",
			members: []*types.Record{
				{ID: "3", Name: "comma,name", DisplayName: "quote \"name\"", Reasons: []string{"line\nbreak"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path, err := exportCSV.New(dir).Export("audit", &types.Document{Members: tt.members})
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "audit.csv"), path)

			verifyCSVFile(t, path, tt.members)
		})
	}
}

func TestExporter_ExportInvalidDirectory(t *testing.T) {
	t.Parallel()

	_, err := exportCSV.New(filepath.Join(t.TempDir(), "missing")).Export("audit", &types.Document{})
	assert.Error(t, err)
}
