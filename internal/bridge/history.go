package bridge

import (
	"context"
	"strconv"
)

func (h *Handler) handleHistoryRecent(ctx context.Context, msg Message) {
	entries, err := h.history.Recent(ctx, msg.Limit, msg.Offset)
	if err != nil {
		h.fail(ctx, msg, err, "failed to load recent history")
		return
	}
	h.responder.Respond(ctx, "historyRecent", entries, msg.RequestID)
}

func (h *Handler) handleHistorySearch(ctx context.Context, msg Message) {
	entries, err := h.history.Search(ctx, msg.Q, msg.Limit)
	if err != nil {
		h.fail(ctx, msg, err, "failed to search history")
		return
	}
	h.responder.Respond(ctx, "historySearch", entries, msg.RequestID)
}

func (h *Handler) handleHistoryAdd(ctx context.Context, msg Message) {
	if msg.URL == "" {
		h.fail(ctx, msg, nil, "history_add requires a URL")
		return
	}

	h.navigate.RecordHistory(ctx, msg.URL)
	if msg.Title != "" {
		if err := h.navigate.UpdateHistoryTitle(ctx, msg.URL, msg.Title); err != nil {
			h.fail(ctx, msg, err, "failed to record history title")
			return
		}
	}

	h.responder.Respond(ctx, "historyAdded", map[string]string{"url": msg.URL}, msg.RequestID)
}

func (h *Handler) handleHistoryDelete(ctx context.Context, msg Message) {
	if msg.HistoryID == "" {
		h.fail(ctx, msg, nil, "history_delete requires an ID")
		return
	}

	id, err := strconv.ParseInt(msg.HistoryID, 10, 64)
	if err != nil {
		h.fail(ctx, msg, err, "invalid history ID format")
		return
	}

	if err := h.history.Delete(ctx, id); err != nil {
		h.fail(ctx, msg, err, "failed to delete history entry")
		return
	}

	h.responder.Respond(ctx, "historyDeleted", map[string]string{"deletedId": msg.HistoryID}, msg.RequestID)
}

func (h *Handler) handleHistoryClear(ctx context.Context, msg Message) {
	if err := h.history.Clear(ctx); err != nil {
		h.fail(ctx, msg, err, "failed to clear history")
		return
	}
	h.responder.Respond(ctx, "historyCleared", map[string]bool{"cleared": true}, msg.RequestID)
}
