package extension

import (
	"sync"

	"codesmith/internal/logger"
)

// LoadOutcome records what happened to one extension during LoadAll.
//
// Imported is true once the extension file executed successfully, even if
// its register call later failed; that mirrors a module that loaded but
// misbehaved at registration time.
type LoadOutcome struct {
	Name       string
	Imported   bool
	Registered bool
	Err        error
}

// Manager discovers and loads extensions, keeping their hosts alive so
// registered commands stay callable.
//
// Every per-extension failure is recovered, logged, and recorded in the
// outcome; nothing an extension does can abort startup or affect its
// neighbors.
type Manager struct {
	mu      sync.Mutex
	surface Surface
	hosts   []*Host
	loaded  bool
}

// NewManager creates a manager that registers extension commands against
// the given surface.
func NewManager(surface Surface) *Manager {
	return &Manager{surface: surface}
}

// LoadAll discovers extensions in dir and runs the import and register
// steps for each, isolating failures per extension and per step.
// Extensions load at most once per process; a second call returns
// ErrAlreadyLoaded.
func (m *Manager) LoadAll(dir string) ([]LoadOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loaded {
		return nil, ErrAlreadyLoaded
	}
	m.loaded = true

	candidates, err := Discover(dir)
	if err != nil {
		// An unreadable directory is no worse than a missing one.
		logger.Warn("extension discovery failed", "dir", dir, "error", err)
		return nil, nil
	}

	outcomes := make([]LoadOutcome, 0, len(candidates))
	for _, c := range candidates {
		outcomes = append(outcomes, m.loadOne(c))
	}
	return outcomes, nil
}

// loadOne imports and registers a single extension.
func (m *Manager) loadOne(c Candidate) LoadOutcome {
	outcome := LoadOutcome{Name: c.Name}
	host := NewHost(c)

	if err := host.Import(); err != nil {
		logger.Warn("failed to load extension", "extension", c.Name, "error", err)
		host.Close()
		outcome.Err = err
		return outcome
	}
	outcome.Imported = true

	if err := host.Register(m.surface); err != nil {
		// The module imported; keep its state alive and record the
		// registration failure.
		logger.Warn("error initializing extension", "extension", c.Name, "error", err)
		outcome.Err = err
		m.hosts = append(m.hosts, host)
		return outcome
	}
	outcome.Registered = true

	m.hosts = append(m.hosts, host)
	logger.Debug("extension registered", "extension", c.Name)
	return outcome
}

// Count returns the number of live extension hosts.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hosts)
}

// Close releases every extension host. Registered commands become dead
// callbacks; only call this on shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, h := range m.hosts {
		h.Close()
	}
	m.hosts = nil
}
