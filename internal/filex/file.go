// Package filex has small filesystem helpers for locating and preparing the
// client's data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir returns <user config dir>/<app>, falling back to the working
// directory when the platform has no config dir.
func DataDir(app string) string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		if base, err = os.Getwd(); err != nil {
			base = "."
		}
	}
	return filepath.Join(base, app)
}

// EnsureParentDir creates the directory that will hold path, owner-only.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
