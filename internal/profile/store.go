package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists profiles as a JSON file. Loading a missing file yields
// the built-in defaults so first run needs no setup step.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all profiles from disk, seeding defaults when the file does
// not exist yet.
func (s *Store) Load() ([]Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}

		return nil, fmt.Errorf("failed to read profiles from %s: %w", s.path, err)
	}

	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file %s: %w", s.path, err)
	}

	if len(profiles) == 0 {
		return Defaults(), nil
	}

	return profiles, nil
}

// Save writes all profiles to disk atomically (write temp, rename).
func (s *Store) Save(profiles []Profile) error {
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}

	tmp := s.path + ".tmp"
	//nolint:gosec // Profiles are user-editable configuration
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace profiles file: %w", err)
	}

	return nil
}
