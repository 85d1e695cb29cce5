package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/skiff/internal/domain/entity"
)

// fakeHistoryRepo is an in-memory HistoryRepository for tests.
type fakeHistoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries map[string]*entity.HistoryEntry
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{entries: make(map[string]*entity.HistoryEntry)}
}

func (r *fakeHistoryRepo) Save(_ context.Context, entry *entity.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID == 0 {
		r.nextID++
		entry.ID = r.nextID
	}
	cp := *entry
	r.entries[entry.URL] = &cp
	return nil
}

func (r *fakeHistoryRepo) FindByURL(_ context.Context, url string) (*entity.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[url]
	if !ok {
		return nil, nil
	}
	cp := *entry
	return &cp, nil
}

func (r *fakeHistoryRepo) Search(_ context.Context, query string, limit int) ([]*entity.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.HistoryEntry
	for _, entry := range r.entries {
		if len(out) >= limit {
			break
		}
		cp := *entry
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeHistoryRepo) GetRecent(_ context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.HistoryEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		cp := *entry
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LastVisited.After(all[j].LastVisited) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeHistoryRepo) IncrementVisitCount(_ context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[url]; ok {
		entry.IncrementVisit()
	}
	return nil
}

func (r *fakeHistoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for url, entry := range r.entries {
		if entry.ID == id {
			delete(r.entries, url)
			return nil
		}
	}
	return nil
}

func (r *fakeHistoryRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*entity.HistoryEntry)
	return nil
}

func (r *fakeHistoryRepo) GetStats(_ context.Context) (*entity.HistoryStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &entity.HistoryStats{}
	for _, entry := range r.entries {
		stats.TotalEntries++
		stats.TotalVisits += entry.VisitCount
	}
	return stats, nil
}

// fakeBookmarkRepo is an in-memory BookmarkRepository for tests.
type fakeBookmarkRepo struct {
	mu        sync.Mutex
	nextID    entity.BookmarkID
	bookmarks []*entity.Bookmark
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{}
}

func (r *fakeBookmarkRepo) Save(_ context.Context, bookmark *entity.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	bookmark.ID = r.nextID
	cp := *bookmark
	r.bookmarks = append(r.bookmarks, &cp)
	return nil
}

func (r *fakeBookmarkRepo) FindByURL(_ context.Context, url string) (*entity.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookmarks {
		if b.URL == url {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBookmarkRepo) GetAll(_ context.Context) ([]*entity.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Bookmark, 0, len(r.bookmarks))
	for _, b := range r.bookmarks {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBookmarkRepo) Delete(_ context.Context, id entity.BookmarkID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookmarks {
		if b.ID == id {
			r.bookmarks = append(r.bookmarks[:i], r.bookmarks[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeDownloadRepo is an in-memory DownloadRepository for tests.
type fakeDownloadRepo struct {
	mu        sync.Mutex
	nextID    entity.DownloadID
	downloads []*entity.Download
}

func newFakeDownloadRepo() *fakeDownloadRepo {
	return &fakeDownloadRepo{}
}

func (r *fakeDownloadRepo) Save(_ context.Context, download *entity.Download) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	download.ID = r.nextID
	cp := *download
	r.downloads = append(r.downloads, &cp)
	return nil
}

func (r *fakeDownloadRepo) FindByID(_ context.Context, id entity.DownloadID) (*entity.Download, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.downloads {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDownloadRepo) GetAll(_ context.Context) ([]*entity.Download, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Download, 0, len(r.downloads))
	for i := len(r.downloads) - 1; i >= 0; i-- {
		cp := *r.downloads[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeDownloadRepo) UpdateProgress(_ context.Context, id entity.DownloadID, receivedBytes int64, status entity.DownloadStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.downloads {
		if d.ID == id {
			d.ReceivedBytes = receivedBytes
			d.Status = status
			return nil
		}
	}
	return nil
}

func (r *fakeDownloadRepo) Delete(_ context.Context, id entity.DownloadID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.downloads {
		if d.ID == id {
			r.downloads = append(r.downloads[:i], r.downloads[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeDownloadRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.downloads = nil
	return nil
}
