package contentview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/skiff/internal/application/port"
)

func TestHeadless_LoadEmitsLifecycleInOrder(t *testing.T) {
	view := NewHeadless()

	var events []string
	view.SetCallbacks(&port.ContentViewCallbacks{
		OnLoadChanged: func(e port.LoadEvent, failure string) {
			events = append(events, e.String())
		},
		OnURIChanged: func(uri string) {
			events = append(events, "uri:"+uri)
		},
	})

	require.NoError(t, view.LoadURI(context.Background(), "https://example.com"))

	assert.Equal(t, []string{"started", "uri:https://example.com", "finished"}, events)
	assert.Equal(t, "https://example.com", view.URI())
	assert.False(t, view.IsLoading())
}

func TestHeadless_FailNextLoad(t *testing.T) {
	view := NewHeadless()

	var failure string
	view.SetCallbacks(&port.ContentViewCallbacks{
		OnLoadChanged: func(e port.LoadEvent, f string) {
			if e == port.LoadFailed {
				failure = f
			}
		},
	})

	view.FailNextLoad("Could not resolve host")
	require.NoError(t, view.LoadURI(context.Background(), "https://unreachable.example"))
	assert.Equal(t, "Could not resolve host", failure)

	// The failure is one-shot.
	failure = ""
	require.NoError(t, view.LoadURI(context.Background(), "https://example.com"))
	assert.Empty(t, failure)
	assert.Equal(t, "https://example.com", view.URI())
}

func TestHeadless_BackForwardStacks(t *testing.T) {
	view := NewHeadless()
	ctx := context.Background()

	require.NoError(t, view.LoadURI(ctx, "https://a.example"))
	require.NoError(t, view.LoadURI(ctx, "https://b.example"))
	require.NoError(t, view.LoadURI(ctx, "https://c.example"))

	assert.True(t, view.CanGoBack())
	assert.False(t, view.CanGoForward())

	require.NoError(t, view.GoBack(ctx))
	assert.Equal(t, "https://b.example", view.URI())
	assert.True(t, view.CanGoForward())

	require.NoError(t, view.GoBack(ctx))
	assert.Equal(t, "https://a.example", view.URI())
	assert.False(t, view.CanGoBack())

	require.NoError(t, view.GoForward(ctx))
	assert.Equal(t, "https://b.example", view.URI())

	// A fresh navigation clears the forward stack.
	require.NoError(t, view.LoadURI(ctx, "https://d.example"))
	assert.False(t, view.CanGoForward())
	assert.True(t, view.CanGoBack())
}

func TestHeadless_BackWithEmptyStackFails(t *testing.T) {
	view := NewHeadless()
	assert.Error(t, view.GoBack(context.Background()))
	assert.Error(t, view.GoForward(context.Background()))
}

func TestHeadless_TitleChange(t *testing.T) {
	view := NewHeadless()

	var got string
	view.SetCallbacks(&port.ContentViewCallbacks{
		OnTitleChanged: func(title string) { got = title },
	})

	view.SetPageTitle("Example Domain")
	assert.Equal(t, "Example Domain", got)
	assert.Equal(t, "Example Domain", view.Title())
}

func TestHeadless_PopupRequest(t *testing.T) {
	view := NewHeadless()

	// No callbacks registered: popup blocked.
	assert.False(t, view.RequestPopup("https://popup.example", true))

	var request port.PopupRequest
	view.SetCallbacks(&port.ContentViewCallbacks{
		OnCreate: func(r port.PopupRequest) bool {
			request = r
			return r.IsUserGesture
		},
	})

	assert.True(t, view.RequestPopup("https://popup.example", true))
	assert.Equal(t, "https://popup.example", request.TargetURI)
	assert.False(t, view.RequestPopup("https://popup.example", false))
}

func TestHeadless_PolicyDecisionCancelsNavigation(t *testing.T) {
	view := NewHeadless()
	ctx := context.Background()

	require.NoError(t, view.LoadURI(ctx, "https://allowed.example"))

	var events []string
	view.SetCallbacks(&port.ContentViewCallbacks{
		OnLoadChanged: func(event port.LoadEvent, _ string) {
			events = append(events, event.String())
		},
		OnDecidePolicy: func(uri string) bool {
			return uri != "https://denied.example"
		},
	})

	// A denied navigation produces no load cycle and keeps the URI.
	require.NoError(t, view.LoadURI(ctx, "https://denied.example"))
	assert.Empty(t, events)
	assert.Equal(t, "https://allowed.example", view.URI())

	require.NoError(t, view.LoadURI(ctx, "https://next.example"))
	assert.Equal(t, "https://next.example", view.URI())
	assert.Contains(t, events, "finished")
}

func TestHeadless_RunScript(t *testing.T) {
	view := NewHeadless()
	ctx := context.Background()

	out, err := view.RunScript(ctx, "1 + 2")
	require.NoError(t, err)
	assert.Equal(t, "3", out)

	out, err = view.RunScript(ctx, `({ok: true, items: ["a", "b"]})`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"items":["a","b"]}`, out)

	out, err = view.RunScript(ctx, "undefined")
	require.NoError(t, err)
	assert.Equal(t, "null", out)

	// State persists across calls within one view.
	_, err = view.RunScript(ctx, "var counter = 41")
	require.NoError(t, err)
	out, err = view.RunScript(ctx, "++counter")
	require.NoError(t, err)
	assert.Equal(t, "42", out)

	_, err = view.RunScript(ctx, "not valid js (")
	assert.Error(t, err)
}

func TestHeadless_FindInContent(t *testing.T) {
	view := NewHeadless()
	ctx := context.Background()

	require.NoError(t, view.LoadHTML(ctx, "<p>The Quick brown fox. The quick red fox.</p>", ""))

	found, err := view.Find(ctx, "quick", port.FindOptions{})
	require.NoError(t, err)
	assert.True(t, found)

	// Case sensitive: only the lowercase occurrence matches.
	found, err = view.Find(ctx, "Quick", port.FindOptions{CaseSensitive: true})
	require.NoError(t, err)
	assert.True(t, found)

	found, err = view.Find(ctx, "QUICK", port.FindOptions{CaseSensitive: true})
	require.NoError(t, err)
	assert.False(t, found)

	// Continue advances past the first match and eventually wraps to none.
	found, err = view.Find(ctx, "quick", port.FindOptions{})
	require.NoError(t, err)
	require.True(t, found)
	found, err = view.Find(ctx, "quick", port.FindOptions{Continue: true})
	require.NoError(t, err)
	assert.True(t, found)
	found, err = view.Find(ctx, "quick", port.FindOptions{Continue: true})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHeadless_FindBackwards(t *testing.T) {
	view := NewHeadless()
	ctx := context.Background()

	require.NoError(t, view.LoadHTML(ctx, "<p>The Quick brown fox. The quick red fox.</p>", ""))

	// A fresh backward search starts from the end of the content.
	found, err := view.Find(ctx, "quick", port.FindOptions{Backwards: true})
	require.NoError(t, err)
	assert.True(t, found)

	// Continuing backwards steps to the earlier occurrence, then runs out.
	found, err = view.Find(ctx, "quick", port.FindOptions{Backwards: true, Continue: true})
	require.NoError(t, err)
	assert.True(t, found)
	found, err = view.Find(ctx, "quick", port.FindOptions{Backwards: true, Continue: true})
	require.NoError(t, err)
	assert.False(t, found)

	// Case sensitive backwards: only the single capitalized occurrence.
	found, err = view.Find(ctx, "Quick", port.FindOptions{Backwards: true, CaseSensitive: true})
	require.NoError(t, err)
	require.True(t, found)
	found, err = view.Find(ctx, "Quick", port.FindOptions{Backwards: true, CaseSensitive: true, Continue: true})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHeadless_ZoomRoundTrip(t *testing.T) {
	view := NewHeadless()
	ctx := context.Background()

	assert.Equal(t, 1.0, view.ZoomLevel())
	require.NoError(t, view.SetZoomLevel(ctx, 1.5))
	assert.Equal(t, 1.5, view.ZoomLevel())
	assert.Error(t, view.SetZoomLevel(ctx, 0))
}

func TestHeadless_ReloadKeepsURI(t *testing.T) {
	view := NewHeadless()
	ctx := context.Background()

	require.NoError(t, view.LoadURI(ctx, "https://example.com"))

	var events []string
	view.SetCallbacks(&port.ContentViewCallbacks{
		OnLoadChanged: func(e port.LoadEvent, _ string) {
			events = append(events, e.String())
		},
	})

	require.NoError(t, view.Reload(ctx))
	assert.Equal(t, []string{"started", "finished"}, events)
	assert.Equal(t, "https://example.com", view.URI())
	assert.False(t, view.CanGoForward())
}

func TestHeadless_ReloadWithoutPageFails(t *testing.T) {
	view := NewHeadless()
	assert.Error(t, view.Reload(context.Background()))
}
