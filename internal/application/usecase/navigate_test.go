package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/skiff/internal/application/port"
	"github.com/bnema/skiff/internal/config"
)

// fakeContentView records LoadURI calls.
type fakeContentView struct {
	port.ContentView
	loaded []string
	err    error
}

func (v *fakeContentView) LoadURI(_ context.Context, uri string) error {
	if v.err != nil {
		return v.err
	}
	v.loaded = append(v.loaded, uri)
	return nil
}

func defaultTemplate() string { return config.DefaultSearchTemplate }

func TestNavigate_ResolveGrammar(t *testing.T) {
	repo := newFakeHistoryRepo()
	uc := NewNavigateUseCase(context.Background(), repo, defaultTemplate)
	defer uc.Close()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"scheme passthrough", "https://example.com/path", "https://example.com/path"},
		{"bare domain", "example.com", "https://example.com"},
		{"search phrase", "two words", "https://duckduckgo.com/?q=two%20words"},
		{"about passthrough", "about:blank", "about:blank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uc.Resolve(tt.input))
		})
	}
}

func TestNavigate_ResolveUsesLiveTemplate(t *testing.T) {
	repo := newFakeHistoryRepo()
	template := "https://duckduckgo.com/?q=%s"
	uc := NewNavigateUseCase(context.Background(), repo, func() string { return template })
	defer uc.Close()

	assert.Equal(t, "https://duckduckgo.com/?q=hello", uc.Resolve("hello"))

	template = "https://search.example/find?q=%s"
	assert.Equal(t, "https://search.example/find?q=hello", uc.Resolve("hello"))
}

func TestNavigate_ExecuteLoadsAndRecordsHistory(t *testing.T) {
	repo := newFakeHistoryRepo()
	uc := NewNavigateUseCase(context.Background(), repo, defaultTemplate)

	view := &fakeContentView{}
	target, err := uc.Execute(context.Background(), view, "example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", target)
	assert.Equal(t, []string{"https://example.com"}, view.loaded)

	// Close drains the async queue, so the record is visible afterwards.
	uc.Close()

	entry, err := repo.FindByURL(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(1), entry.VisitCount)
}

func TestNavigate_RepeatVisitsIncrementCount(t *testing.T) {
	repo := newFakeHistoryRepo()
	uc := NewNavigateUseCase(context.Background(), repo, defaultTemplate)

	for i := 0; i < 3; i++ {
		uc.RecordHistory(context.Background(), "https://example.com")
	}
	uc.Close()

	entry, err := repo.FindByURL(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(3), entry.VisitCount)
}

func TestNavigate_AboutURLsAreNotRecorded(t *testing.T) {
	repo := newFakeHistoryRepo()
	uc := NewNavigateUseCase(context.Background(), repo, defaultTemplate)

	uc.RecordHistory(context.Background(), "about:blank")
	uc.Close()

	entry, err := repo.FindByURL(context.Background(), "about:blank")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestNavigate_UpdateHistoryTitle(t *testing.T) {
	repo := newFakeHistoryRepo()
	uc := NewNavigateUseCase(context.Background(), repo, defaultTemplate)
	defer uc.Close()

	uc.RecordHistory(context.Background(), "https://example.com")

	// Wait for the worker's periodic flush.
	require.Eventually(t, func() bool {
		entry, _ := repo.FindByURL(context.Background(), "https://example.com")
		return entry != nil
	}, time.Second, 10*time.Millisecond)

	err := uc.UpdateHistoryTitle(context.Background(), "https://example.com", "Example Domain")
	require.NoError(t, err)

	entry, err := repo.FindByURL(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Example Domain", entry.Title)
}

func TestNavigate_UpdateTitleForUnknownURLIsNoop(t *testing.T) {
	repo := newFakeHistoryRepo()
	uc := NewNavigateUseCase(context.Background(), repo, defaultTemplate)
	defer uc.Close()

	err := uc.UpdateHistoryTitle(context.Background(), "https://never-visited.example", "Title")
	assert.NoError(t, err)
}

func TestNavigate_CloseIsIdempotent(t *testing.T) {
	repo := newFakeHistoryRepo()
	uc := NewNavigateUseCase(context.Background(), repo, defaultTemplate)
	uc.Close()
	uc.Close()
}
