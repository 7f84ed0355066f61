package config

import "sync"

// Store is the shared, mutable configuration. The UI writes to it between
// frames and the scheduler copies a Render snapshot at the top of each frame.
type Store struct {
	mu       sync.RWMutex
	settings Settings
	render   Render
}

func NewStore(s Settings) (*Store, error) {
	r, err := s.Render()
	if err != nil {
		return nil, err
	}
	return &Store{settings: s, render: r}, nil
}

// Snapshot returns a copy of the current render configuration.
func (st *Store) Snapshot() Render {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.render
}

func (st *Store) Settings() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings
}

func (st *Store) Visualizer() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings.Visualizer
}

// Update applies fn to a copy of the settings. The change is discarded if the
// result does not validate.
func (st *Store) Update(fn func(*Settings)) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	next := st.settings
	fn(&next)
	r, err := next.Render()
	if err != nil {
		return err
	}
	st.settings = next
	st.render = r
	return nil
}
