package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/domain/repository"
	"github.com/bnema/skiff/internal/logging"
)

// SearchHistoryUseCase handles history queries and deletion.
type SearchHistoryUseCase struct {
	historyRepo repository.HistoryRepository
}

// NewSearchHistoryUseCase creates a new history search use case.
func NewSearchHistoryUseCase(historyRepo repository.HistoryRepository) *SearchHistoryUseCase {
	return &SearchHistoryUseCase{
		historyRepo: historyRepo,
	}
}

// Recent retrieves recent history entries with pagination.
func (uc *SearchHistoryUseCase) Recent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	entries, err := uc.historyRepo.GetRecent(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent history: %w", err)
	}
	return entries, nil
}

// Search performs a text search over history.
func (uc *SearchHistoryUseCase) Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := uc.historyRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	return entries, nil
}

// Delete removes a single history entry.
func (uc *SearchHistoryUseCase) Delete(ctx context.Context, id int64) error {
	log := logging.FromContext(ctx)

	if err := uc.historyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	log.Info().Int64("id", id).Msg("history entry deleted")
	return nil
}

// Clear removes all history entries.
func (uc *SearchHistoryUseCase) Clear(ctx context.Context) error {
	log := logging.FromContext(ctx)

	if err := uc.historyRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	log.Info().Msg("history cleared")
	return nil
}

// Stats retrieves aggregate history statistics.
func (uc *SearchHistoryUseCase) Stats(ctx context.Context) (*entity.HistoryStats, error) {
	stats, err := uc.historyRepo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get history stats: %w", err)
	}
	return stats, nil
}
