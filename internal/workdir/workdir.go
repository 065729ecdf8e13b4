// Package workdir manages the on-disk layout for dictation files.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Root returns the base directory for all dictate working files.
// The path is expanded at runtime to resolve to:
//
//	$HOME/Documents/Alkime/Dictate
func Root() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, "Documents", "Alkime", "Dictate"), nil
}

// RecordingsDir returns the directory holding finished recordings.
func RecordingsDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}

	return filepath.Join(root, "recordings"), nil
}

// RecordingPath returns the output path for a recording started at the
// given time, e.g. recordings/20260828-140502.mp3.
func RecordingPath(startedAt time.Time) (string, error) {
	dir, err := RecordingsDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, startedAt.Format("20060102-150405")+".mp3"), nil
}

// ProfilesPath returns the path of the profiles JSON file.
func ProfilesPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}

	return filepath.Join(root, "profiles.json"), nil
}

// Prep ensures the working directory tree exists.
func Prep() error {
	dir, err := RecordingsDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create recordings directory %s: %w", dir, err)
	}

	return nil
}
