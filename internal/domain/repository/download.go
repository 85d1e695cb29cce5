package repository

import (
	"context"

	"github.com/bnema/skiff/internal/domain/entity"
)

// DownloadRepository defines operations for download tracking persistence.
type DownloadRepository interface {
	// Save inserts a download and assigns its ID.
	Save(ctx context.Context, download *entity.Download) error

	// FindByID retrieves a download by ID. Returns nil when absent.
	FindByID(ctx context.Context, id entity.DownloadID) (*entity.Download, error)

	// GetAll retrieves all downloads, newest first.
	GetAll(ctx context.Context) ([]*entity.Download, error)

	// UpdateProgress sets received bytes and status for a download.
	UpdateProgress(ctx context.Context, id entity.DownloadID, receivedBytes int64, status entity.DownloadStatus) error

	// Delete removes a download record by ID.
	Delete(ctx context.Context, id entity.DownloadID) error

	// DeleteAll removes all download records.
	DeleteAll(ctx context.Context) error
}
