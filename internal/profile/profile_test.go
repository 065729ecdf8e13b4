package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		profile     Profile
		expectError string
	}{
		{
			name:    "valid formatting profile",
			profile: Profile{ID: "casual", Name: "Casual", Prompt: "Rewrite casually."},
		},
		{
			name:    "valid raw profile",
			profile: Profile{ID: "raw", Name: "Raw", SkipFormatting: true},
		},
		{
			name:        "missing ID",
			profile:     Profile{Name: "Casual", Prompt: "x"},
			expectError: "ID cannot be empty",
		},
		{
			name:        "ID with spaces",
			profile:     Profile{ID: "two words", Name: "Casual", Prompt: "x"},
			expectError: "must not contain",
		},
		{
			name:        "missing name",
			profile:     Profile{ID: "casual", Prompt: "x"},
			expectError: "name cannot be empty",
		},
		{
			name:        "formatting profile without prompt",
			profile:     Profile{ID: "casual", Name: "Casual"},
			expectError: "require a prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.profile.Validate()

			if tt.expectError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			}
		})
	}
}

func TestStore_LoadMissingFileSeedsDefaults(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "profiles.json"))

	profiles, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, Defaults(), profiles)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "profiles.json"))
	want := []Profile{
		{ID: "formal", Name: "Formal", Prompt: "Rewrite formally."},
		{ID: "raw", Name: "Raw", SkipFormatting: true},
	}

	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "profiles.json"))

	m, err := NewManager(store, "default")
	require.NoError(t, err)

	return m
}

func TestManager_ActiveSelection(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	assert.Equal(t, "default", m.Active())

	require.NoError(t, m.Select("raw"))
	assert.Equal(t, "raw", m.Active())
	assert.True(t, m.ActiveProfile().SkipFormatting)

	assert.Error(t, m.Select("nope"))
	assert.Equal(t, "raw", m.Active(), "failed select must not change the active profile")
}

func TestManager_UnknownActiveFallsBack(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "profiles.json"))

	m, err := NewManager(store, "missing")

	require.NoError(t, err)
	assert.Equal(t, "default", m.Active())
}

func TestManager_SaveValidatesAndPersists(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	err := m.Save(Profile{ID: "bad", Name: ""})
	assert.Error(t, err, "invalid profiles must be rejected")

	require.NoError(t, m.Save(Profile{ID: "formal", Name: "Formal", Prompt: "Rewrite formally."}))

	got, ok := m.Get("formal")
	require.True(t, ok)
	assert.Equal(t, "Formal", got.Name)
	assert.Len(t, m.All(), 3)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	require.NoError(t, m.Select("raw"))
	require.NoError(t, m.Delete("raw"))

	assert.Equal(t, "default", m.Active(), "deleting the active profile reselects the first")

	err := m.Delete("default")
	assert.Error(t, err, "the last profile cannot be deleted")
}
