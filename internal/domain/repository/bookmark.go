package repository

import (
	"context"

	"github.com/bnema/skiff/internal/domain/entity"
)

// BookmarkRepository defines operations for bookmark persistence.
type BookmarkRepository interface {
	// Save inserts a bookmark and assigns its ID.
	Save(ctx context.Context, bookmark *entity.Bookmark) error

	// FindByURL retrieves a bookmark by URL. Returns nil when absent.
	FindByURL(ctx context.Context, url string) (*entity.Bookmark, error)

	// GetAll retrieves all bookmarks ordered by creation date.
	GetAll(ctx context.Context) ([]*entity.Bookmark, error)

	// Delete removes a bookmark by ID.
	Delete(ctx context.Context, id entity.BookmarkID) error
}
