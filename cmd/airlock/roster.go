package main

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/airlock/internal/member"
)

// LoadRoster reads a JSON array of member records. Records without a
// creation time get the one encoded in their snowflake ID.
func LoadRoster(path string) ([]*member.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	var roster []*member.Record
	if err := sonic.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster JSON: %w", err)
	}

	for _, record := range roster {
		if record != nil && record.ID != 0 && record.CreatedAt.IsZero() {
			record.CreatedAt = snowflake.ID(record.ID).Time().UTC()
		}
	}

	return roster, nil
}
