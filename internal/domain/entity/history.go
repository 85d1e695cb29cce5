package entity

import "time"

// HistoryEntry represents a visited URL in browsing history.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	FaviconURL  string    `json:"favicon"`
	VisitCount  int64     `json:"visit_count"`
	LastVisited time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewHistoryEntry creates a new history entry for a URL.
func NewHistoryEntry(url, title string) *HistoryEntry {
	now := time.Now()
	return &HistoryEntry{
		URL:         url,
		Title:       title,
		VisitCount:  1,
		LastVisited: now,
		CreatedAt:   now,
	}
}

// IncrementVisit updates the entry for a new visit.
func (h *HistoryEntry) IncrementVisit() {
	h.VisitCount++
	h.LastVisited = time.Now()
}

// HistoryStats contains aggregated history statistics.
type HistoryStats struct {
	TotalEntries int64 `json:"total_entries"`
	TotalVisits  int64 `json:"total_visits"`
}
