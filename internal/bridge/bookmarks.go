package bridge

import "context"

func (h *Handler) handleBookmarksGetAll(ctx context.Context, msg Message) {
	bookmarks, err := h.bookmarks.GetAll(ctx)
	if err != nil {
		h.fail(ctx, msg, err, "failed to load bookmarks")
		return
	}
	h.responder.Respond(ctx, "bookmarks", bookmarks, msg.RequestID)
}

func (h *Handler) handleBookmarkToggle(ctx context.Context, msg Message) {
	if msg.URL == "" {
		h.fail(ctx, msg, nil, "bookmark_toggle requires a URL")
		return
	}

	added, err := h.bookmarks.Toggle(ctx, msg.URL, msg.Title, msg.FaviconURL)
	if err != nil {
		h.fail(ctx, msg, err, "failed to toggle bookmark")
		return
	}

	h.responder.Respond(ctx, "bookmarkToggled", map[string]any{
		"url":   msg.URL,
		"added": added,
	}, msg.RequestID)
}

func (h *Handler) handleBookmarkIs(ctx context.Context, msg Message) {
	if msg.URL == "" {
		h.fail(ctx, msg, nil, "bookmark_is requires a URL")
		return
	}

	bookmarked, err := h.bookmarks.IsBookmarked(ctx, msg.URL)
	if err != nil {
		h.fail(ctx, msg, err, "failed to check bookmark")
		return
	}

	h.responder.Respond(ctx, "bookmarkState", map[string]any{
		"url":        msg.URL,
		"bookmarked": bookmarked,
	}, msg.RequestID)
}
