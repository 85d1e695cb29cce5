package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/domain/repository"
	"github.com/bnema/skiff/internal/logging"
)

// ManageDownloadsUseCase handles download tracking operations.
type ManageDownloadsUseCase struct {
	downloadRepo repository.DownloadRepository
}

// NewManageDownloadsUseCase creates a new downloads management use case.
func NewManageDownloadsUseCase(downloadRepo repository.DownloadRepository) *ManageDownloadsUseCase {
	return &ManageDownloadsUseCase{
		downloadRepo: downloadRepo,
	}
}

// AddDownloadInput contains parameters for registering a download.
type AddDownloadInput struct {
	URL      string
	Filename string
	Path     string
	Size     int64
}

// Add registers a new download.
func (uc *ManageDownloadsUseCase) Add(ctx context.Context, input AddDownloadInput) (*entity.Download, error) {
	log := logging.FromContext(ctx)

	if input.URL == "" || input.Filename == "" {
		return nil, fmt.Errorf("download URL and filename are required")
	}

	download := entity.NewDownload(input.URL, input.Filename, input.Path, input.Size)
	if err := uc.downloadRepo.Save(ctx, download); err != nil {
		return nil, fmt.Errorf("failed to save download: %w", err)
	}

	log.Info().
		Str("filename", input.Filename).
		Int64("id", int64(download.ID)).
		Msg("download registered")
	return download, nil
}

// UpdateProgress records received bytes for a download, transitioning it to
// active, or to completed when the byte count reaches the total size.
func (uc *ManageDownloadsUseCase) UpdateProgress(ctx context.Context, id entity.DownloadID, receivedBytes int64) (*entity.Download, error) {
	download, err := uc.downloadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find download: %w", err)
	}
	if download == nil {
		return nil, fmt.Errorf("download %d not found", id)
	}
	if download.Finished() {
		return download, nil
	}

	status := entity.DownloadActive
	if download.Size > 0 && receivedBytes >= download.Size {
		receivedBytes = download.Size
		status = entity.DownloadCompleted
	}

	if err := uc.downloadRepo.UpdateProgress(ctx, id, receivedBytes, status); err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	download.ReceivedBytes = receivedBytes
	download.Status = status
	return download, nil
}

// Fail marks a download as failed.
func (uc *ManageDownloadsUseCase) Fail(ctx context.Context, id entity.DownloadID) error {
	download, err := uc.downloadRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find download: %w", err)
	}
	if download == nil {
		return fmt.Errorf("download %d not found", id)
	}
	return uc.downloadRepo.UpdateProgress(ctx, id, download.ReceivedBytes, entity.DownloadFailed)
}

// Cancel marks a download as cancelled.
func (uc *ManageDownloadsUseCase) Cancel(ctx context.Context, id entity.DownloadID) error {
	download, err := uc.downloadRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find download: %w", err)
	}
	if download == nil {
		return fmt.Errorf("download %d not found", id)
	}
	return uc.downloadRepo.UpdateProgress(ctx, id, download.ReceivedBytes, entity.DownloadCancelled)
}

// GetAll retrieves all downloads, newest first.
func (uc *ManageDownloadsUseCase) GetAll(ctx context.Context) ([]*entity.Download, error) {
	downloads, err := uc.downloadRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get downloads: %w", err)
	}
	return downloads, nil
}

// Delete removes a download record.
func (uc *ManageDownloadsUseCase) Delete(ctx context.Context, id entity.DownloadID) error {
	if err := uc.downloadRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete download: %w", err)
	}
	return nil
}

// Clear removes all download records.
func (uc *ManageDownloadsUseCase) Clear(ctx context.Context) error {
	log := logging.FromContext(ctx)

	if err := uc.downloadRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear downloads: %w", err)
	}

	log.Info().Msg("downloads cleared")
	return nil
}
