package bridge

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/skiff/internal/application/usecase"
	"github.com/bnema/skiff/internal/config"
	"github.com/bnema/skiff/internal/domain/entity"
)

// recordingResponder captures bridge replies for assertions.
type recordingResponder struct {
	calls []respondCall
}

type respondCall struct {
	callback  string
	payload   any
	requestID string
}

func (r *recordingResponder) Respond(_ context.Context, callback string, payload any, requestID string) {
	r.calls = append(r.calls, respondCall{callback: callback, payload: payload, requestID: requestID})
}

func (r *recordingResponder) last(t *testing.T) respondCall {
	t.Helper()
	require.NotEmpty(t, r.calls, "expected at least one bridge reply")
	return r.calls[len(r.calls)-1]
}

// memHistoryRepo is a minimal in-memory HistoryRepository.
type memHistoryRepo struct {
	nextID  int64
	entries map[string]*entity.HistoryEntry
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{entries: make(map[string]*entity.HistoryEntry)}
}

func (r *memHistoryRepo) Save(_ context.Context, e *entity.HistoryEntry) error {
	if e.ID == 0 {
		r.nextID++
		e.ID = r.nextID
	}
	cp := *e
	r.entries[e.URL] = &cp
	return nil
}

func (r *memHistoryRepo) FindByURL(_ context.Context, url string) (*entity.HistoryEntry, error) {
	e, ok := r.entries[url]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memHistoryRepo) Search(_ context.Context, _ string, limit int) ([]*entity.HistoryEntry, error) {
	var out []*entity.HistoryEntry
	for _, e := range r.entries {
		if len(out) >= limit {
			break
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memHistoryRepo) GetRecent(_ context.Context, limit, _ int) ([]*entity.HistoryEntry, error) {
	return r.Search(context.Background(), "", limit)
}

func (r *memHistoryRepo) IncrementVisitCount(_ context.Context, url string) error {
	if e, ok := r.entries[url]; ok {
		e.IncrementVisit()
	}
	return nil
}

func (r *memHistoryRepo) Delete(_ context.Context, id int64) error {
	for url, e := range r.entries {
		if e.ID == id {
			delete(r.entries, url)
			return nil
		}
	}
	return nil
}

func (r *memHistoryRepo) DeleteAll(_ context.Context) error {
	r.entries = make(map[string]*entity.HistoryEntry)
	return nil
}

func (r *memHistoryRepo) GetStats(_ context.Context) (*entity.HistoryStats, error) {
	stats := &entity.HistoryStats{}
	for _, e := range r.entries {
		stats.TotalEntries++
		stats.TotalVisits += e.VisitCount
	}
	return stats, nil
}

// memBookmarkRepo is a minimal in-memory BookmarkRepository.
type memBookmarkRepo struct {
	nextID    entity.BookmarkID
	bookmarks []*entity.Bookmark
}

func (r *memBookmarkRepo) Save(_ context.Context, b *entity.Bookmark) error {
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.bookmarks = append(r.bookmarks, &cp)
	return nil
}

func (r *memBookmarkRepo) FindByURL(_ context.Context, url string) (*entity.Bookmark, error) {
	for _, b := range r.bookmarks {
		if b.URL == url {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memBookmarkRepo) GetAll(_ context.Context) ([]*entity.Bookmark, error) {
	out := make([]*entity.Bookmark, len(r.bookmarks))
	for i, b := range r.bookmarks {
		cp := *b
		out[i] = &cp
	}
	return out, nil
}

func (r *memBookmarkRepo) Delete(_ context.Context, id entity.BookmarkID) error {
	for i, b := range r.bookmarks {
		if b.ID == id {
			r.bookmarks = append(r.bookmarks[:i], r.bookmarks[i+1:]...)
			return nil
		}
	}
	return nil
}

// memDownloadRepo is a minimal in-memory DownloadRepository.
type memDownloadRepo struct {
	nextID    entity.DownloadID
	downloads []*entity.Download
	failAll   bool
}

func (r *memDownloadRepo) Save(_ context.Context, d *entity.Download) error {
	if r.failAll {
		return fmt.Errorf("storage unavailable")
	}
	r.nextID++
	d.ID = r.nextID
	cp := *d
	r.downloads = append(r.downloads, &cp)
	return nil
}

func (r *memDownloadRepo) FindByID(_ context.Context, id entity.DownloadID) (*entity.Download, error) {
	for _, d := range r.downloads {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memDownloadRepo) GetAll(_ context.Context) ([]*entity.Download, error) {
	if r.failAll {
		return nil, fmt.Errorf("storage unavailable")
	}
	out := make([]*entity.Download, len(r.downloads))
	for i, d := range r.downloads {
		cp := *d
		out[i] = &cp
	}
	return out, nil
}

func (r *memDownloadRepo) UpdateProgress(_ context.Context, id entity.DownloadID, receivedBytes int64, status entity.DownloadStatus) error {
	for _, d := range r.downloads {
		if d.ID == id {
			d.ReceivedBytes = receivedBytes
			d.Status = status
		}
	}
	return nil
}

func (r *memDownloadRepo) Delete(_ context.Context, id entity.DownloadID) error {
	for i, d := range r.downloads {
		if d.ID == id {
			r.downloads = append(r.downloads[:i], r.downloads[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memDownloadRepo) DeleteAll(_ context.Context) error {
	r.downloads = nil
	return nil
}

// recordingNavigator captures navigate delegations.
type recordingNavigator struct {
	inputs []string
	err    error
}

func (n *recordingNavigator) NavigateInput(_ context.Context, input string) error {
	if n.err != nil {
		return n.err
	}
	n.inputs = append(n.inputs, input)
	return nil
}

type handlerFixture struct {
	handler   *Handler
	responder *recordingResponder
	navigator *recordingNavigator
	history   *memHistoryRepo
	downloads *memDownloadRepo
	navigate  *usecase.NavigateUseCase
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("XDG_DATA_HOME", tmp)
	t.Setenv("XDG_STATE_HOME", tmp)
	require.NoError(t, config.EnsureDirectories())

	cfg, err := config.NewManager()
	require.NoError(t, err)
	require.NoError(t, cfg.Load(context.Background()))

	historyRepo := newMemHistoryRepo()
	downloadRepo := &memDownloadRepo{}
	responder := &recordingResponder{}
	navigator := &recordingNavigator{}

	navigateUC := usecase.NewNavigateUseCase(context.Background(), historyRepo, func() string {
		return cfg.Get().Settings().SearchTemplate
	})
	t.Cleanup(navigateUC.Close)

	handler := NewHandler(
		cfg,
		usecase.NewSearchHistoryUseCase(historyRepo),
		navigateUC,
		usecase.NewManageBookmarksUseCase(&memBookmarkRepo{}),
		usecase.NewManageDownloadsUseCase(downloadRepo),
		responder,
	)
	handler.SetNavigator(navigator)

	return &handlerFixture{
		handler:   handler,
		responder: responder,
		navigator: navigator,
		history:   historyRepo,
		downloads: downloadRepo,
		navigate:  navigateUC,
	}
}

func TestHandler_MalformedPayloadIsDropped(t *testing.T) {
	f := newHandlerFixture(t)
	f.handler.Handle(context.Background(), "{not json")
	assert.Empty(t, f.responder.calls)
}

func TestHandler_UnknownTypeIsDropped(t *testing.T) {
	f := newHandlerFixture(t)
	f.handler.Handle(context.Background(), `{"type":"telepathy"}`)
	assert.Empty(t, f.responder.calls)
}

func TestHandler_SettingsGetAll(t *testing.T) {
	f := newHandlerFixture(t)
	f.handler.Handle(context.Background(), `{"type":"settings_get_all","requestId":"r1"}`)

	reply := f.responder.last(t)
	assert.Equal(t, "settings", reply.callback)
	assert.Equal(t, "r1", reply.requestID)

	settings, ok := reply.payload.(entity.Settings)
	require.True(t, ok, "payload should be a settings snapshot")
	assert.Equal(t, config.DefaultSearchTemplate, settings.SearchTemplate)
}

func TestHandler_SettingsSetRoundTrip(t *testing.T) {
	f := newHandlerFixture(t)
	f.handler.Handle(context.Background(), `{"type":"settings_set","key":"theme","value":"dark","requestId":"r2"}`)

	reply := f.responder.last(t)
	assert.Equal(t, "settingSaved", reply.callback)

	f.handler.Handle(context.Background(), `{"type":"settings_get_all"}`)
	settings, ok := f.responder.last(t).payload.(entity.Settings)
	require.True(t, ok)
	assert.Equal(t, "dark", settings.Theme)
}

func TestHandler_SettingsSetInvalidValueFails(t *testing.T) {
	f := newHandlerFixture(t)
	f.handler.Handle(context.Background(), `{"type":"settings_set","key":"theme","value":"neon","requestId":"r3"}`)

	reply := f.responder.last(t)
	assert.Equal(t, errorCallback, reply.callback)
	assert.Equal(t, "r3", reply.requestID)

	// The rejected value must not leak into later snapshots.
	f.handler.Handle(context.Background(), `{"type":"settings_get_all"}`)
	settings, ok := f.responder.last(t).payload.(entity.Settings)
	require.True(t, ok)
	assert.Equal(t, config.DefaultTheme, settings.Theme)
}

func TestHandler_HistoryAddAndRecent(t *testing.T) {
	f := newHandlerFixture(t)
	ctx := context.Background()

	f.handler.Handle(ctx, `{"type":"history_add","url":"https://example.com","title":"Example"}`)
	// history_add records through the async queue; closing drains it.
	f.navigate.Close()

	f.handler.Handle(ctx, `{"type":"history_recent","limit":10,"requestId":"r4"}`)
	reply := f.responder.last(t)
	assert.Equal(t, "historyRecent", reply.callback)

	entries, ok := reply.payload.([]*entity.HistoryEntry)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://example.com", entries[0].URL)
}

func TestHandler_HistoryDeleteInvalidID(t *testing.T) {
	f := newHandlerFixture(t)
	f.handler.Handle(context.Background(), `{"type":"history_delete","historyId":"not-a-number"}`)
	assert.Equal(t, errorCallback, f.responder.last(t).callback)
}

func TestHandler_HistoryClear(t *testing.T) {
	f := newHandlerFixture(t)
	ctx := context.Background()

	require.NoError(t, f.history.Save(ctx, entity.NewHistoryEntry("https://example.com", "")))
	f.handler.Handle(ctx, `{"type":"history_clear"}`)
	assert.Equal(t, "historyCleared", f.responder.last(t).callback)

	entries, err := f.history.GetRecent(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHandler_DownloadLifecycle(t *testing.T) {
	f := newHandlerFixture(t)
	ctx := context.Background()

	f.handler.Handle(ctx, `{"type":"download_add","url":"https://example.com/f.zip","filename":"f.zip","size":100}`)
	reply := f.responder.last(t)
	require.Equal(t, "downloadAdded", reply.callback)

	added, ok := reply.payload.(*entity.Download)
	require.True(t, ok)

	f.handler.Handle(ctx, fmt.Sprintf(`{"type":"download_progress","downloadId":%d,"receivedBytes":100}`, added.ID))
	reply = f.responder.last(t)
	require.Equal(t, "downloadProgress", reply.callback)

	progressed, ok := reply.payload.(*entity.Download)
	require.True(t, ok)
	assert.Equal(t, entity.DownloadCompleted, progressed.Status)
}

func TestHandler_DownloadsStorageFailureRespondsError(t *testing.T) {
	f := newHandlerFixture(t)
	f.downloads.failAll = true

	f.handler.Handle(context.Background(), `{"type":"downloads_get_all","requestId":"r5"}`)
	reply := f.responder.last(t)
	assert.Equal(t, errorCallback, reply.callback)
	assert.Equal(t, "r5", reply.requestID)
}

func TestHandler_BookmarkToggleAndCheck(t *testing.T) {
	f := newHandlerFixture(t)
	ctx := context.Background()

	f.handler.Handle(ctx, `{"type":"bookmark_toggle","url":"https://example.com","title":"Example"}`)
	reply := f.responder.last(t)
	require.Equal(t, "bookmarkToggled", reply.callback)
	assert.Equal(t, map[string]any{"url": "https://example.com", "added": true}, reply.payload)

	f.handler.Handle(ctx, `{"type":"bookmark_is","url":"https://example.com"}`)
	reply = f.responder.last(t)
	require.Equal(t, "bookmarkState", reply.callback)
	assert.Equal(t, map[string]any{"url": "https://example.com", "bookmarked": true}, reply.payload)

	f.handler.Handle(ctx, `{"type":"bookmark_toggle","url":"https://example.com"}`)
	reply = f.responder.last(t)
	require.Equal(t, "bookmarkToggled", reply.callback)
	assert.Equal(t, map[string]any{"url": "https://example.com", "added": false}, reply.payload)
}

func TestHandler_NavigateDelegates(t *testing.T) {
	f := newHandlerFixture(t)
	f.handler.Handle(context.Background(), `{"type":"navigate","url":"example.com"}`)
	assert.Equal(t, []string{"example.com"}, f.navigator.inputs)
	assert.Empty(t, f.responder.calls)
}

func TestHandler_NavigateFailureRespondsError(t *testing.T) {
	f := newHandlerFixture(t)
	f.navigator.err = fmt.Errorf("view gone")

	f.handler.Handle(context.Background(), `{"type":"navigate","url":"example.com","requestId":"r6"}`)
	reply := f.responder.last(t)
	assert.Equal(t, errorCallback, reply.callback)
	assert.Equal(t, "r6", reply.requestID)
}

func TestHandler_NavigateWithoutInputFails(t *testing.T) {
	f := newHandlerFixture(t)
	f.handler.Handle(context.Background(), `{"type":"navigate"}`)
	assert.Equal(t, errorCallback, f.responder.last(t).callback)
}
