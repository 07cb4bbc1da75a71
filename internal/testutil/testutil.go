// Package testutil provides common test helpers for the rv project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleProfiles is an rv.toml with globals, two profiles and a nested profile.
const SampleProfiles = `GLOBAL = "g"

[work]
TOKEN = "work-token"
REGION = "eu"

[work.staging]
REGION = "eu-staging"
HOST = "staging.internal"

[personal]
TOKEN = "personal-token"
`

// TempProfileDir creates a temporary directory containing an rv.toml with
// the given content and returns the directory path.
func TempProfileDir(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	WriteProfileFile(t, dir, content)
	return dir
}

// WriteProfileFile writes (or overwrites) rv.toml in dir.
func WriteProfileFile(t *testing.T, dir, content string) {
	t.Helper()

	path := filepath.Join(dir, "rv.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteProfileFile: write failed: %v", err)
	}
}

// TempStoreFile creates a temporary metadata.json with the given content
// and returns its path.
func TempStoreFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.json")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempStoreFile: write failed: %v", err)
	}

	return path
}

// TempSettingsFile creates a temporary config.toml with the given content
// and returns its path.
func TempSettingsFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempSettingsFile: write failed: %v", err)
	}

	return path
}

// SetupSettings creates a config.toml whose data_dir points at a fresh
// temporary directory. Returns the settings path and the data dir.
func SetupSettings(t *testing.T) (settingsPath, dataDir string) {
	t.Helper()

	dataDir = t.TempDir()
	content := "data_dir = " + quote(dataDir) + "\n"
	return TempSettingsFile(t, content), dataDir
}

func quote(s string) string {
	return "'" + s + "'"
}
