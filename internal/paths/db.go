// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const dbFileName = "longview.db"

// ResolveDBPath normalizes user input into a database file path.
// It accepts either a database file or a directory that holds one,
// expands a leading ~, and falls back when the input is empty.
//
// Input normalization:
//   - "/path/to/dir"           -> "/path/to/dir/longview.db"
//   - "/path/to/dir/custom.db" -> "/path/to/dir/custom.db"
//   - "~/data"                 -> "$HOME/data/longview.db"
//   - ""                       -> fallback
func ResolveDBPath(path, fallback string) string {
	if path == "" {
		return fallback
	}
	path = filepath.Clean(expandHome(path))

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, dbFileName)
	}
	if filepath.Ext(path) == "" {
		// No extension and nothing on disk yet: treat the input as a data
		// directory that will be created on first open.
		return filepath.Join(path, dbFileName)
	}
	return path
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
