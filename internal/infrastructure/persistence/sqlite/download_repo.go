package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/domain/repository"
)

type downloadRepo struct {
	db *sql.DB
}

// NewDownloadRepository creates a new SQLite-backed download repository.
func NewDownloadRepository(db *sql.DB) repository.DownloadRepository {
	return &downloadRepo{db: db}
}

func (r *downloadRepo) Save(ctx context.Context, download *entity.Download) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO downloads (url, filename, path, size, received_bytes, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		download.URL, download.Filename, download.Path,
		download.Size, download.ReceivedBytes, string(download.Status))
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	download.ID = entity.DownloadID(id)
	return nil
}

func (r *downloadRepo) FindByID(ctx context.Context, id entity.DownloadID) (*entity.Download, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, url, filename, path, size, received_bytes, status, created_at
		FROM downloads WHERE id = ?`, int64(id))

	download, err := scanDownload(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return download, nil
}

func (r *downloadRepo) GetAll(ctx context.Context) ([]*entity.Download, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url, filename, path, size, received_bytes, status, created_at
		FROM downloads
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	downloads := make([]*entity.Download, 0)
	for rows.Next() {
		download, err := scanDownload(rows)
		if err != nil {
			return nil, err
		}
		downloads = append(downloads, download)
	}
	return downloads, rows.Err()
}

func (r *downloadRepo) UpdateProgress(ctx context.Context, id entity.DownloadID, receivedBytes int64, status entity.DownloadStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE downloads SET received_bytes = ?, status = ? WHERE id = ?`,
		receivedBytes, string(status), int64(id))
	return err
}

func (r *downloadRepo) Delete(ctx context.Context, id entity.DownloadID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM downloads WHERE id = ?`, int64(id))
	return err
}

func (r *downloadRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM downloads`)
	return err
}

func scanDownload(row rowScanner) (*entity.Download, error) {
	var (
		download entity.Download
		status   string
	)
	if err := row.Scan(&download.ID, &download.URL, &download.Filename, &download.Path,
		&download.Size, &download.ReceivedBytes, &status, &download.CreatedAt); err != nil {
		return nil, err
	}
	download.Status = entity.DownloadStatus(status)
	return &download, nil
}
