package manager

import (
	"sync"

	"cmtui/session"
)

// registryState is the swappable registry snapshot plus its name index.
// It is only replaced as a whole, never mutated in place.
type registryState struct {
	mu       sync.RWMutex
	sessions []session.Session
	byName   map[string]session.Session
}

// replace swaps in a new snapshot and rebuilds the name index.
func (r *registryState) replace(sessions []session.Session) {
	byName := make(map[string]session.Session, len(sessions))
	for _, s := range sessions {
		byName[s.Name] = s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = sessions
	r.byName = byName
}

// Sessions returns a copy of the current registry snapshot.
func (m *Manager) Sessions() []session.Session {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	out := make([]session.Session, len(m.state.sessions))
	copy(out, m.state.sessions)
	return out
}

// Get looks up a session by its raw name.
func (m *Manager) Get(name string) (session.Session, bool) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()

	s, ok := m.state.byName[name]
	return s, ok
}

// Len returns the number of sessions in the current snapshot.
func (m *Manager) Len() int {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return len(m.state.sessions)
}
