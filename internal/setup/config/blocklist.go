package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// DefaultBlocklistFile is the avatar blocklist file name used when none is configured.
const DefaultBlocklistFile = "avatar_blocklist.json"

var ErrBlocklistNotFound = errors.New("could not find avatar blocklist in any config path")

// AvatarBlocklist is the on-disk list of avatar hashes and URLs reused by known bad actors.
type AvatarBlocklist struct {
	Hashes []string `json:"hashes"`
	URLs   []string `json:"urls"`
}

// Entries returns every hash and URL in file order.
func (b *AvatarBlocklist) Entries() []string {
	entries := make([]string, 0, len(b.Hashes)+len(b.URLs))
	entries = append(entries, b.Hashes...)
	entries = append(entries, b.URLs...)
	return entries
}

// LoadBlocklist loads the avatar blocklist. The directory the config was
// loaded from is tried first, then the usual search paths.
func LoadBlocklist(configPath, name string) (*AvatarBlocklist, error) {
	if name == "" {
		name = DefaultBlocklistFile
	}

	// An absolute path skips the search
	if filepath.IsAbs(name) {
		return loadBlocklistFromPath(name)
	}

	if configPath != "" {
		if blocklist, err := loadBlocklistFromPath(filepath.Join(configPath, name)); err == nil {
			return blocklist, nil
		}
	}

	configPaths, err := Paths()
	if err != nil {
		return nil, err
	}

	for _, path := range configPaths {
		if blocklist, err := loadBlocklistFromPath(filepath.Join(path, name)); err == nil {
			return blocklist, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrBlocklistNotFound, name)
}

// loadBlocklistFromPath loads the blocklist from a specific file path.
func loadBlocklistFromPath(path string) (*AvatarBlocklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blocklist file: %w", err)
	}

	var blocklist AvatarBlocklist
	if err := sonic.Unmarshal(data, &blocklist); err != nil {
		return nil, fmt.Errorf("failed to parse blocklist JSON: %w", err)
	}

	return &blocklist, nil
}
