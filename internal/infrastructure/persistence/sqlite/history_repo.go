package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/domain/repository"
	"github.com/bnema/skiff/internal/logging"
)

const logURLMaxLen = 60

type historyRepo struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite-backed history repository.
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Save(ctx context.Context, entry *entity.HistoryEntry) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("url", logging.TruncateURL(entry.URL, logURLMaxLen)).Msg("saving history entry")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history (url, title, favicon_url, visit_count, last_visited)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(url) DO UPDATE SET
			title = CASE WHEN excluded.title != '' THEN excluded.title ELSE history.title END,
			favicon_url = CASE WHEN excluded.favicon_url != '' THEN excluded.favicon_url ELSE history.favicon_url END,
			last_visited = CURRENT_TIMESTAMP`,
		entry.URL, entry.Title, entry.FaviconURL, entry.VisitCount)
	return err
}

func (r *historyRepo) FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, url, title, favicon_url, visit_count, last_visited, created_at
		FROM history WHERE url = ?`, url)

	entry, err := scanHistory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (r *historyRepo) Search(ctx context.Context, query string, limit int) ([]*entity.HistoryEntry, error) {
	if query == "" {
		return []*entity.HistoryEntry{}, nil
	}
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url, title, favicon_url, visit_count, last_visited, created_at
		FROM history
		WHERE url LIKE ? OR title LIKE ?
		ORDER BY visit_count DESC, last_visited DESC
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectHistory(rows)
}

func (r *historyRepo) GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url, title, favicon_url, visit_count, last_visited, created_at
		FROM history
		ORDER BY last_visited DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectHistory(rows)
}

func (r *historyRepo) IncrementVisitCount(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE history
		SET visit_count = visit_count + 1, last_visited = CURRENT_TIMESTAMP
		WHERE url = ?`, url)
	return err
}

func (r *historyRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	return err
}

func (r *historyRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

func (r *historyRepo) GetStats(ctx context.Context) (*entity.HistoryStats, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(visit_count), 0) FROM history`)

	stats := &entity.HistoryStats{}
	if err := row.Scan(&stats.TotalEntries, &stats.TotalVisits); err != nil {
		return nil, err
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (*entity.HistoryEntry, error) {
	var (
		entry   entity.HistoryEntry
		title   sql.NullString
		favicon sql.NullString
	)
	if err := row.Scan(&entry.ID, &entry.URL, &title, &favicon,
		&entry.VisitCount, &entry.LastVisited, &entry.CreatedAt); err != nil {
		return nil, err
	}
	entry.Title = title.String
	entry.FaviconURL = favicon.String
	return &entry, nil
}

func collectHistory(rows *sql.Rows) ([]*entity.HistoryEntry, error) {
	entries := make([]*entity.HistoryEntry, 0)
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
