// Package repository defines persistence interfaces for the privileged host.
package repository

import (
	"context"

	"github.com/bnema/skiff/internal/domain/entity"
)

// HistoryRepository defines operations for browsing history persistence.
type HistoryRepository interface {
	// Save creates or updates a history entry (upsert by URL).
	Save(ctx context.Context, entry *entity.HistoryEntry) error

	// FindByURL retrieves a history entry by its URL. Returns nil when absent.
	FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error)

	// Search performs a substring search over URL and title.
	Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error)

	// GetRecent retrieves recent history entries with pagination.
	GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error)

	// IncrementVisitCount increments the visit count for a URL.
	IncrementVisitCount(ctx context.Context, url string) error

	// Delete removes a single history entry by ID.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes all history entries.
	DeleteAll(ctx context.Context) error

	// GetStats retrieves overall history statistics.
	GetStats(ctx context.Context) (*entity.HistoryStats, error)
}
