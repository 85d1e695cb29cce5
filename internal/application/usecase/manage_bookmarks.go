package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/domain/repository"
	"github.com/bnema/skiff/internal/logging"
)

// ManageBookmarksUseCase handles bookmark operations.
type ManageBookmarksUseCase struct {
	bookmarkRepo repository.BookmarkRepository
}

// NewManageBookmarksUseCase creates a new bookmarks management use case.
func NewManageBookmarksUseCase(bookmarkRepo repository.BookmarkRepository) *ManageBookmarksUseCase {
	return &ManageBookmarksUseCase{
		bookmarkRepo: bookmarkRepo,
	}
}

// Toggle adds the URL as a bookmark if absent, removes it if present.
// De-duplication is by URL equality. Returns true when the URL is
// bookmarked after the call.
func (uc *ManageBookmarksUseCase) Toggle(ctx context.Context, bookmarkURL, title, faviconURL string) (bool, error) {
	log := logging.FromContext(ctx)

	if bookmarkURL == "" {
		return false, fmt.Errorf("bookmark URL is required")
	}

	existing, err := uc.bookmarkRepo.FindByURL(ctx, bookmarkURL)
	if err != nil {
		return false, fmt.Errorf("failed to check existing bookmark: %w", err)
	}

	if existing != nil {
		if err := uc.bookmarkRepo.Delete(ctx, existing.ID); err != nil {
			return true, fmt.Errorf("failed to remove bookmark: %w", err)
		}
		log.Info().Str("url", bookmarkURL).Msg("bookmark removed")
		return false, nil
	}

	bookmark := entity.NewBookmark(bookmarkURL, title)
	bookmark.FaviconURL = faviconURL
	if err := uc.bookmarkRepo.Save(ctx, bookmark); err != nil {
		return false, fmt.Errorf("failed to save bookmark: %w", err)
	}

	log.Info().Str("url", bookmarkURL).Int64("id", int64(bookmark.ID)).Msg("bookmark added")
	return true, nil
}

// IsBookmarked checks if a URL is bookmarked.
func (uc *ManageBookmarksUseCase) IsBookmarked(ctx context.Context, bookmarkURL string) (bool, error) {
	bookmark, err := uc.bookmarkRepo.FindByURL(ctx, bookmarkURL)
	if err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}
	return bookmark != nil, nil
}

// GetAll retrieves all bookmarks.
func (uc *ManageBookmarksUseCase) GetAll(ctx context.Context) ([]*entity.Bookmark, error) {
	log := logging.FromContext(ctx)

	bookmarks, err := uc.bookmarkRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	log.Debug().Int("count", len(bookmarks)).Msg("retrieved bookmarks")
	return bookmarks, nil
}

// Remove deletes a bookmark by ID.
func (uc *ManageBookmarksUseCase) Remove(ctx context.Context, id entity.BookmarkID) error {
	log := logging.FromContext(ctx)

	if err := uc.bookmarkRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	log.Info().Int64("id", int64(id)).Msg("bookmark removed")
	return nil
}
