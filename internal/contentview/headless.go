// Package contentview provides a headless implementation of the content view
// port. It backs the dev shell and tests: navigation history, the load state
// machine and script execution behave like a real embedded engine, without
// rendering anything.
package contentview

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/grafana/sobek"

	"github.com/bnema/skiff/internal/application/port"
)

// Headless implements port.ContentView in-process. Scripts run in a sobek
// JS runtime. Callbacks are invoked synchronously on the calling goroutine,
// which preserves emission order.
type Headless struct {
	mu sync.Mutex

	uri     string
	title   string
	content string
	loading bool
	zoom    float64

	backStack    []string
	forwardStack []string

	callbacks *port.ContentViewCallbacks

	vm *sobek.Runtime

	// failNext holds the failure description for the next load.
	failNext string

	// lastFindEnd tracks where a continued find resumes from.
	lastFindEnd int
	lastFind    string
}

// NewHeadless creates a headless content view.
func NewHeadless() *Headless {
	return &Headless{
		zoom: 1.0,
		vm:   sobek.New(),
	}
}

// FailNextLoad makes the next LoadURI or Reload fail with the given
// description. Test and dev-shell control, not part of the port.
func (h *Headless) FailNextLoad(description string) {
	h.mu.Lock()
	h.failNext = description
	h.mu.Unlock()
}

// SetPageTitle simulates the page announcing its title.
func (h *Headless) SetPageTitle(title string) {
	h.mu.Lock()
	h.title = title
	cb := h.callbacks
	h.mu.Unlock()

	if cb != nil && cb.OnTitleChanged != nil {
		cb.OnTitleChanged(title)
	}
}

// RequestPopup simulates the page asking for a popup window. It reports
// whether the popup was allowed.
func (h *Headless) RequestPopup(targetURI string, userGesture bool) bool {
	h.mu.Lock()
	cb := h.callbacks
	h.mu.Unlock()

	if cb == nil || cb.OnCreate == nil {
		return false
	}
	return cb.OnCreate(port.PopupRequest{TargetURI: targetURI, IsUserGesture: userGesture})
}

// LoadURI implements port.ContentView.
func (h *Headless) LoadURI(_ context.Context, uri string) error {
	if uri == "" {
		return fmt.Errorf("empty URI")
	}

	h.mu.Lock()
	cb := h.callbacks
	h.mu.Unlock()
	if cb != nil && cb.OnDecidePolicy != nil && !cb.OnDecidePolicy(uri) {
		return nil
	}

	h.mu.Lock()
	if h.uri != "" && h.uri != uri {
		h.backStack = append(h.backStack, h.uri)
	}
	h.forwardStack = nil
	h.mu.Unlock()

	return h.completeLoad(uri, "")
}

// LoadHTML implements port.ContentView. The content is held for Find.
func (h *Headless) LoadHTML(_ context.Context, content, baseURI string) error {
	h.mu.Lock()
	h.content = content
	h.mu.Unlock()

	uri := baseURI
	if uri == "" {
		uri = "about:blank"
	}
	return h.completeLoad(uri, content)
}

// Reload implements port.ContentView.
func (h *Headless) Reload(_ context.Context) error {
	h.mu.Lock()
	uri := h.uri
	content := h.content
	h.mu.Unlock()

	if uri == "" {
		return fmt.Errorf("nothing to reload")
	}
	return h.completeLoad(uri, content)
}

// completeLoad runs the synchronous load cycle: Started, then either
// Finished (updating the URI) or Failed with the armed description.
func (h *Headless) completeLoad(uri, content string) error {
	h.mu.Lock()
	failure := h.failNext
	h.failNext = ""
	h.loading = true
	cb := h.callbacks
	h.mu.Unlock()

	if cb != nil && cb.OnLoadChanged != nil {
		cb.OnLoadChanged(port.LoadStarted, "")
	}

	if failure != "" {
		h.mu.Lock()
		h.loading = false
		h.mu.Unlock()
		if cb != nil && cb.OnLoadChanged != nil {
			cb.OnLoadChanged(port.LoadFailed, failure)
		}
		return nil
	}

	h.mu.Lock()
	uriChanged := h.uri != uri
	h.uri = uri
	h.content = content
	h.loading = false
	h.lastFindEnd = 0
	h.lastFind = ""
	h.mu.Unlock()

	if uriChanged && cb != nil && cb.OnURIChanged != nil {
		cb.OnURIChanged(uri)
	}
	if cb != nil && cb.OnLoadChanged != nil {
		cb.OnLoadChanged(port.LoadFinished, "")
	}
	return nil
}

// Stop implements port.ContentView.
func (h *Headless) Stop(_ context.Context) error {
	h.mu.Lock()
	h.loading = false
	h.mu.Unlock()
	return nil
}

// GoBack implements port.ContentView.
func (h *Headless) GoBack(_ context.Context) error {
	h.mu.Lock()
	if len(h.backStack) == 0 {
		h.mu.Unlock()
		return fmt.Errorf("no back history")
	}
	target := h.backStack[len(h.backStack)-1]
	h.backStack = h.backStack[:len(h.backStack)-1]
	h.forwardStack = append(h.forwardStack, h.uri)
	h.mu.Unlock()

	return h.completeLoad(target, "")
}

// GoForward implements port.ContentView.
func (h *Headless) GoForward(_ context.Context) error {
	h.mu.Lock()
	if len(h.forwardStack) == 0 {
		h.mu.Unlock()
		return fmt.Errorf("no forward history")
	}
	target := h.forwardStack[len(h.forwardStack)-1]
	h.forwardStack = h.forwardStack[:len(h.forwardStack)-1]
	h.backStack = append(h.backStack, h.uri)
	h.mu.Unlock()

	return h.completeLoad(target, "")
}

// URI implements port.ContentView.
func (h *Headless) URI() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.uri
}

// Title implements port.ContentView.
func (h *Headless) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// IsLoading implements port.ContentView.
func (h *Headless) IsLoading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

// CanGoBack implements port.ContentView.
func (h *Headless) CanGoBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.backStack) > 0
}

// CanGoForward implements port.ContentView.
func (h *Headless) CanGoForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.forwardStack) > 0
}

// SetZoomLevel implements port.ContentView.
func (h *Headless) SetZoomLevel(_ context.Context, level float64) error {
	if level <= 0 {
		return fmt.Errorf("invalid zoom level: %v", level)
	}
	h.mu.Lock()
	h.zoom = level
	h.mu.Unlock()
	return nil
}

// ZoomLevel implements port.ContentView.
func (h *Headless) ZoomLevel() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.zoom
}

// Find implements port.ContentView by searching the loaded content.
func (h *Headless) Find(_ context.Context, text string, options port.FindOptions) (bool, error) {
	if text == "" {
		return false, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	haystack := h.content
	needle := text
	if !options.CaseSensitive {
		haystack = strings.ToLower(haystack)
		needle = strings.ToLower(needle)
	}

	continuing := options.Continue && h.lastFind == needle

	var idx int
	if options.Backwards {
		// Search the region before the previous match, or the whole
		// content on a fresh find.
		end := len(haystack)
		if continuing {
			end = h.lastFindEnd - len(needle)
			if end < 0 {
				end = 0
			}
		}
		idx = strings.LastIndex(haystack[:end], needle)
	} else {
		start := 0
		if continuing {
			start = h.lastFindEnd
		}
		if start > len(haystack) {
			start = len(haystack)
		}
		idx = strings.Index(haystack[start:], needle)
		if idx >= 0 {
			idx += start
		}
	}

	if idx < 0 {
		h.lastFind = ""
		h.lastFindEnd = 0
		return false, nil
	}

	h.lastFind = needle
	h.lastFindEnd = idx + len(needle)
	return true, nil
}

// RunScript implements port.ContentView. The script executes in the view's
// JS runtime and the result is returned serialized as JSON.
func (h *Headless) RunScript(_ context.Context, script string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	value, err := h.vm.RunString(script)
	if err != nil {
		return "", fmt.Errorf("script failed: %w", err)
	}

	if value == nil || sobek.IsUndefined(value) || sobek.IsNull(value) {
		return "null", nil
	}

	out, err := json.Marshal(value.Export())
	if err != nil {
		return "", fmt.Errorf("script result not serializable: %w", err)
	}
	return string(out), nil
}

// SetCallbacks implements port.ContentView.
func (h *Headless) SetCallbacks(callbacks *port.ContentViewCallbacks) {
	h.mu.Lock()
	h.callbacks = callbacks
	h.mu.Unlock()
}
