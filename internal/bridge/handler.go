package bridge

import (
	"context"

	"github.com/bnema/skiff/internal/application/usecase"
	"github.com/bnema/skiff/internal/config"
	"github.com/bnema/skiff/internal/logging"
)

// Navigator resolves free-form input and drives the active content view.
// The UI controller implements this; injection breaks the package cycle
// between the bridge and the controller.
type Navigator interface {
	NavigateInput(ctx context.Context, input string) error
}

// Handler dispatches bridge calls from the UI to host operations.
// Failures are logged and reported through the error callback; a bridge call
// never propagates an error into the page.
type Handler struct {
	config    *config.Manager
	history   *usecase.SearchHistoryUseCase
	navigate  *usecase.NavigateUseCase
	bookmarks *usecase.ManageBookmarksUseCase
	downloads *usecase.ManageDownloadsUseCase
	responder Responder
	navigator Navigator
}

// NewHandler creates a bridge call handler.
func NewHandler(
	cfg *config.Manager,
	history *usecase.SearchHistoryUseCase,
	navigate *usecase.NavigateUseCase,
	bookmarks *usecase.ManageBookmarksUseCase,
	downloads *usecase.ManageDownloadsUseCase,
	responder Responder,
) *Handler {
	return &Handler{
		config:    cfg,
		history:   history,
		navigate:  navigate,
		bookmarks: bookmarks,
		downloads: downloads,
		responder: responder,
	}
}

// SetNavigator injects the navigation delegate.
func (h *Handler) SetNavigator(navigator Navigator) {
	h.navigator = navigator
}

// Handle processes one raw bridge call. Unknown call types are logged and
// dropped.
func (h *Handler) Handle(ctx context.Context, payload string) {
	log := logging.FromContext(ctx)

	msg, err := ParseMessage(payload)
	if err != nil {
		log.Warn().Err(err).Msg("failed to parse bridge message")
		return
	}

	log.Debug().Str("type", msg.Type).Str("request_id", msg.RequestID).Msg("bridge call")

	switch msg.Type {
	case "settings_get_all":
		h.handleSettingsGetAll(ctx, msg)
	case "settings_set":
		h.handleSettingsSet(ctx, msg)
	case "history_recent":
		h.handleHistoryRecent(ctx, msg)
	case "history_search":
		h.handleHistorySearch(ctx, msg)
	case "history_add":
		h.handleHistoryAdd(ctx, msg)
	case "history_delete":
		h.handleHistoryDelete(ctx, msg)
	case "history_clear":
		h.handleHistoryClear(ctx, msg)
	case "downloads_get_all":
		h.handleDownloadsGetAll(ctx, msg)
	case "download_add":
		h.handleDownloadAdd(ctx, msg)
	case "download_progress":
		h.handleDownloadProgress(ctx, msg)
	case "download_delete":
		h.handleDownloadDelete(ctx, msg)
	case "downloads_clear":
		h.handleDownloadsClear(ctx, msg)
	case "bookmarks_get_all":
		h.handleBookmarksGetAll(ctx, msg)
	case "bookmark_toggle":
		h.handleBookmarkToggle(ctx, msg)
	case "bookmark_is":
		h.handleBookmarkIs(ctx, msg)
	case "navigate":
		h.handleNavigate(ctx, msg)
	default:
		log.Warn().Str("type", msg.Type).Msg("unknown bridge call type")
	}
}

// fail logs the error and delivers it to the UI error callback.
func (h *Handler) fail(ctx context.Context, msg Message, err error, description string) {
	logging.FromContext(ctx).Warn().
		Err(err).
		Str("type", msg.Type).
		Msg(description)

	h.responder.Respond(ctx, errorCallback, errorPayload{
		Call:    msg.Type,
		Message: description,
	}, msg.RequestID)
}

func (h *Handler) handleNavigate(ctx context.Context, msg Message) {
	if msg.URL == "" {
		h.fail(ctx, msg, nil, "navigate requires input")
		return
	}
	if h.navigator == nil {
		logging.FromContext(ctx).Warn().Msg("navigate call received before navigator attached")
		return
	}
	if err := h.navigator.NavigateInput(ctx, msg.URL); err != nil {
		h.fail(ctx, msg, err, "navigation failed")
	}
}
