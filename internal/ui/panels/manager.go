// Package panels tracks the overlay panels of the shell UI. Panels are
// mutually exclusive: opening one closes whatever else is open, and the
// backdrop is visible exactly when some panel is open.
package panels

import "sync"

// Kind identifies an overlay panel.
type Kind string

const (
	Settings  Kind = "settings"
	History   Kind = "history"
	Downloads Kind = "downloads"
	Bookmarks Kind = "bookmarks"
	Shortcuts Kind = "shortcuts"
)

// Kinds lists every panel the manager knows about.
var Kinds = []Kind{Settings, History, Downloads, Bookmarks, Shortcuts}

// valid reports whether k names a known panel.
func valid(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Manager tracks which panel, if any, is open.
type Manager struct {
	mu       sync.Mutex
	open     Kind // empty when no panel is open
	onChange func(open Kind, backdrop bool)
}

// NewManager creates a panel manager with all panels closed.
func NewManager() *Manager {
	return &Manager{}
}

// OnChange registers a callback invoked after every visibility change.
func (m *Manager) OnChange(fn func(open Kind, backdrop bool)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Open shows the panel, hiding any other open panel. Unknown kinds are
// ignored.
func (m *Manager) Open(k Kind) {
	if !valid(k) {
		return
	}

	m.mu.Lock()
	if m.open == k {
		m.mu.Unlock()
		return
	}
	m.open = k
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(k, true)
	}
}

// Close hides the panel if it is the open one.
func (m *Manager) Close(k Kind) {
	m.mu.Lock()
	if m.open != k || k == "" {
		m.mu.Unlock()
		return
	}
	m.open = ""
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn("", false)
	}
}

// CloseAll hides whatever panel is open.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	if m.open == "" {
		m.mu.Unlock()
		return
	}
	m.open = ""
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn("", false)
	}
}

// Toggle opens the panel if closed, closes it if open.
func (m *Manager) Toggle(k Kind) {
	if !valid(k) {
		return
	}

	m.mu.Lock()
	open := m.open == k
	m.mu.Unlock()

	if open {
		m.Close(k)
	} else {
		m.Open(k)
	}
}

// Visible reports whether the panel is currently shown.
func (m *Manager) Visible(k Kind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open == k && k != ""
}

// BackdropVisible reports whether the shared backdrop should be shown.
// The backdrop is visible exactly when a panel is open.
func (m *Manager) BackdropVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open != ""
}

// OpenPanel returns the currently open panel, or empty when none.
func (m *Manager) OpenPanel() Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}
