package entity

import (
	"fmt"
	"time"
)

// TabID uniquely identifies a tab. IDs are derived from the creation
// timestamp and are unique within a single shell instance.
type TabID string

// LoadState tracks the per-tab load lifecycle.
type LoadState int

const (
	// LoadIdle means no navigation has happened yet.
	LoadIdle LoadState = iota
	// LoadLoading means a navigation is in flight.
	LoadLoading
	// LoadLoaded means the last navigation finished.
	LoadLoaded
	// LoadFailed means the last navigation failed and the error page is shown.
	LoadFailed
)

// String returns a human-readable representation of the load state.
func (s LoadState) String() string {
	switch s {
	case LoadLoading:
		return "loading"
	case LoadLoaded:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Tab represents one open page in the tab bar.
type Tab struct {
	ID           TabID
	URL          string
	Name         string // Custom display name; falls back to Title
	Title        string
	CanGoBack    bool
	CanGoForward bool
	State        LoadState
	Position     int // Position in the tab bar (0-indexed)
	CreatedAt    time.Time
}

// NewTab creates a new tab.
func NewTab(id TabID) *Tab {
	return &Tab{
		ID:        id,
		CreatedAt: time.Now(),
	}
}

// DisplayTitle returns the title shown in the tab bar, falling back to the
// URL and then "New Tab".
func (t *Tab) DisplayTitle() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" {
		return t.URL
	}
	return "New Tab"
}

// TabList manages an ordered collection of tabs.
type TabList struct {
	Tabs        []*Tab
	ActiveTabID TabID
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{
		Tabs: make([]*Tab, 0),
	}
}

// Add appends a tab to the list. The first tab added becomes active.
func (tl *TabList) Add(tab *Tab) {
	tab.Position = len(tl.Tabs)
	tl.Tabs = append(tl.Tabs, tab)
	if tl.ActiveTabID == "" {
		tl.ActiveTabID = tab.ID
	}
}

// Remove removes a tab by ID and reindexes positions.
// If the removed tab was active, the most recently created remaining tab
// becomes active.
func (tl *TabList) Remove(id TabID) bool {
	for i, tab := range tl.Tabs {
		if tab.ID == id {
			tl.Tabs = append(tl.Tabs[:i], tl.Tabs[i+1:]...)
			for j := i; j < len(tl.Tabs); j++ {
				tl.Tabs[j].Position = j
			}
			if tl.ActiveTabID == id {
				tl.ActiveTabID = ""
				if most := tl.mostRecent(); most != nil {
					tl.ActiveTabID = most.ID
				}
			}
			return true
		}
	}
	return false
}

// mostRecent returns the tab with the latest creation time.
func (tl *TabList) mostRecent() *Tab {
	var most *Tab
	for _, tab := range tl.Tabs {
		if most == nil || tab.CreatedAt.After(most.CreatedAt) {
			most = tab
		}
	}
	return most
}

// Find returns a tab by ID.
func (tl *TabList) Find(id TabID) *Tab {
	for _, tab := range tl.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// ActiveTab returns the currently active tab.
func (tl *TabList) ActiveTab() *Tab {
	return tl.Find(tl.ActiveTabID)
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}

// Move moves a tab to a new position.
func (tl *TabList) Move(id TabID, newPos int) bool {
	if newPos < 0 || newPos >= len(tl.Tabs) {
		return false
	}
	var tab *Tab
	var oldPos int
	for i, t := range tl.Tabs {
		if t.ID == id {
			tab = t
			oldPos = i
			break
		}
	}
	if tab == nil {
		return false
	}
	tl.Tabs = append(tl.Tabs[:oldPos], tl.Tabs[oldPos+1:]...)
	tl.Tabs = append(tl.Tabs[:newPos], append([]*Tab{tab}, tl.Tabs[newPos:]...)...)
	for i := range tl.Tabs {
		tl.Tabs[i].Position = i
	}
	return true
}

// ReorderFromIDs rebuilds tab order from an externally supplied ID sequence
// (e.g. the tab bar after a drag-and-drop). The sequence must be an exact
// permutation of the current IDs: a mismatch is an error rather than a silent
// drop, so no tab record can be lost by a stale reorder.
func (tl *TabList) ReorderFromIDs(ids []TabID) error {
	if len(ids) != len(tl.Tabs) {
		return fmt.Errorf("reorder expects %d tab IDs, got %d", len(tl.Tabs), len(ids))
	}

	byID := make(map[TabID]*Tab, len(tl.Tabs))
	for _, tab := range tl.Tabs {
		byID[tab.ID] = tab
	}

	reordered := make([]*Tab, 0, len(ids))
	seen := make(map[TabID]bool, len(ids))
	for _, id := range ids {
		tab, ok := byID[id]
		if !ok {
			return fmt.Errorf("unknown tab ID in reorder: %s", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate tab ID in reorder: %s", id)
		}
		seen[id] = true
		reordered = append(reordered, tab)
	}

	tl.Tabs = reordered
	for i := range tl.Tabs {
		tl.Tabs[i].Position = i
	}
	return nil
}
