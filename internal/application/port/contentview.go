// Package port defines application-layer interfaces for external capabilities.
// Ports abstract the embedded browser widget and host facilities so the
// application layer stays independent of any specific engine.
package port

import "context"

// LoadEvent represents page load state transitions.
type LoadEvent int

const (
	// LoadStarted indicates navigation has begun.
	LoadStarted LoadEvent = iota
	// LoadFinished indicates the page has fully loaded.
	LoadFinished
	// LoadFailed indicates the load was aborted with an error.
	LoadFailed
)

// String returns a human-readable representation of the load event.
func (e LoadEvent) String() string {
	switch e {
	case LoadStarted:
		return "started"
	case LoadFinished:
		return "finished"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FindOptions configures in-page text search.
type FindOptions struct {
	Backwards     bool
	CaseSensitive bool
	// Continue advances from the previous match instead of restarting.
	Continue bool
}

// PopupRequest contains metadata about a popup window request.
type PopupRequest struct {
	TargetURI     string
	IsUserGesture bool
}

// ContentViewCallbacks defines callback handlers for content view events.
// Implementations invoke these on the UI event loop, in emission order.
type ContentViewCallbacks struct {
	// OnLoadChanged is called when load state changes. For LoadFailed the
	// failure description is passed, otherwise it is empty.
	OnLoadChanged func(event LoadEvent, failure string)
	// OnTitleChanged is called when the page title changes.
	OnTitleChanged func(title string)
	// OnURIChanged is called when the URI changes.
	OnURIChanged func(uri string)
	// OnCreate is called when a popup window is requested.
	// Return false to block the popup.
	OnCreate func(request PopupRequest) bool
	// OnDecidePolicy is called before a navigation commits.
	// Return false to cancel it.
	OnDecidePolicy func(uri string) bool
}

// ContentView is the embedded web content widget consumed by the UI
// controller. The controller treats it as an opaque capability.
type ContentView interface {
	// --- Navigation ---

	// LoadURI navigates to the specified URI.
	LoadURI(ctx context.Context, uri string) error

	// LoadHTML loads HTML content with an optional base URI.
	LoadHTML(ctx context.Context, content, baseURI string) error

	// Reload reloads the current page.
	Reload(ctx context.Context) error

	// Stop stops the current page load.
	Stop(ctx context.Context) error

	// GoBack navigates back in history.
	GoBack(ctx context.Context) error

	// GoForward navigates forward in history.
	GoForward(ctx context.Context) error

	// --- State queries ---

	URI() string
	Title() string
	IsLoading() bool
	CanGoBack() bool
	CanGoForward() bool

	// --- Zoom ---

	SetZoomLevel(ctx context.Context, level float64) error
	ZoomLevel() float64

	// --- Find ---

	// Find searches for text in the page and reports whether a match exists.
	Find(ctx context.Context, text string, options FindOptions) (bool, error)

	// --- Scripting ---

	// RunScript executes a script in the page context and returns its
	// result serialized as JSON.
	RunScript(ctx context.Context, script string) (string, error)

	// --- Callbacks ---

	// SetCallbacks registers callback handlers for view events.
	// Pass nil to clear all callbacks.
	SetCallbacks(callbacks *ContentViewCallbacks)
}
