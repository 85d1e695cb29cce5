package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/domain/repository"
)

type bookmarkRepo struct {
	db *sql.DB
}

// NewBookmarkRepository creates a new SQLite-backed bookmark repository.
func NewBookmarkRepository(db *sql.DB) repository.BookmarkRepository {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) Save(ctx context.Context, bookmark *entity.Bookmark) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO bookmarks (url, title, favicon_url)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			favicon_url = excluded.favicon_url`,
		bookmark.URL, bookmark.Title, bookmark.FaviconURL)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err == nil && id > 0 {
		bookmark.ID = entity.BookmarkID(id)
	}
	return nil
}

func (r *bookmarkRepo) FindByURL(ctx context.Context, url string) (*entity.Bookmark, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, url, title, favicon_url, created_at
		FROM bookmarks WHERE url = ?`, url)

	bookmark, err := scanBookmark(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return bookmark, nil
}

func (r *bookmarkRepo) GetAll(ctx context.Context) ([]*entity.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url, title, favicon_url, created_at
		FROM bookmarks
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	bookmarks := make([]*entity.Bookmark, 0)
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, bookmark)
	}
	return bookmarks, rows.Err()
}

func (r *bookmarkRepo) Delete(ctx context.Context, id entity.BookmarkID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, int64(id))
	return err
}

func scanBookmark(row rowScanner) (*entity.Bookmark, error) {
	var (
		bookmark entity.Bookmark
		title    sql.NullString
		favicon  sql.NullString
	)
	if err := row.Scan(&bookmark.ID, &bookmark.URL, &title, &favicon, &bookmark.CreatedAt); err != nil {
		return nil, err
	}
	bookmark.Title = title.String
	bookmark.FaviconURL = favicon.String
	return &bookmark, nil
}
