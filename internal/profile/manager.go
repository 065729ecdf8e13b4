package profile

import (
	"fmt"
	"sync"
)

// Manager tracks the loaded profiles and the active selection. It is the
// collaborator that actually applies SelectProfile; the state machine
// treats profile selection as a no-op and queries the active ID through
// a callback.
type Manager struct {
	mu       sync.Mutex
	store    *Store
	profiles []Profile
	activeID string
}

// NewManager loads profiles from the store and selects the active one.
// An unknown activeID falls back to the first profile.
func NewManager(store *Store, activeID string) (*Manager, error) {
	profiles, err := store.Load()
	if err != nil {
		return nil, err
	}

	m := &Manager{
		store:    store,
		profiles: profiles,
	}

	if _, ok := m.lookup(activeID); ok {
		m.activeID = activeID
	} else {
		m.activeID = profiles[0].ID
	}

	return m, nil
}

// Active returns the active profile ID.
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.activeID
}

// ActiveProfile returns the active profile value.
func (m *Manager) ActiveProfile() Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, _ := m.lookup(m.activeID)

	return p
}

// Select switches the active profile.
func (m *Manager) Select(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lookup(id); !ok {
		return fmt.Errorf("unknown profile: %s", id)
	}

	m.activeID = id

	return nil
}

// Get returns a profile by ID.
func (m *Manager) Get(id string) (Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lookup(id)
}

// All returns a copy of all profiles in load order.
func (m *Manager) All() []Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Profile, len(m.profiles))
	copy(out, m.profiles)

	return out
}

// Save validates and upserts a profile, then persists the full set.
func (m *Manager) Save(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	replaced := false

	for i, existing := range m.profiles {
		if existing.ID == p.ID {
			m.profiles[i] = p
			replaced = true

			break
		}
	}

	if !replaced {
		m.profiles = append(m.profiles, p)
	}

	return m.store.Save(m.profiles)
}

// Delete removes a profile. The last remaining profile cannot be
// deleted, and deleting the active profile reselects the first one.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.profiles) == 1 {
		return fmt.Errorf("cannot delete the last profile")
	}

	idx := -1

	for i, p := range m.profiles {
		if p.ID == id {
			idx = i

			break
		}
	}

	if idx < 0 {
		return fmt.Errorf("unknown profile: %s", id)
	}

	m.profiles = append(m.profiles[:idx], m.profiles[idx+1:]...)

	if m.activeID == id {
		m.activeID = m.profiles[0].ID
	}

	return m.store.Save(m.profiles)
}

func (m *Manager) lookup(id string) (Profile, bool) {
	for _, p := range m.profiles {
		if p.ID == id {
			return p, true
		}
	}

	return Profile{}, false
}
