package bridge

import (
	"context"

	"github.com/bnema/skiff/internal/application/usecase"
	"github.com/bnema/skiff/internal/domain/entity"
)

func (h *Handler) handleDownloadsGetAll(ctx context.Context, msg Message) {
	downloads, err := h.downloads.GetAll(ctx)
	if err != nil {
		h.fail(ctx, msg, err, "failed to load downloads")
		return
	}
	h.responder.Respond(ctx, "downloads", downloads, msg.RequestID)
}

func (h *Handler) handleDownloadAdd(ctx context.Context, msg Message) {
	download, err := h.downloads.Add(ctx, usecase.AddDownloadInput{
		URL:      msg.URL,
		Filename: msg.Filename,
		Path:     msg.Path,
		Size:     msg.Size,
	})
	if err != nil {
		h.fail(ctx, msg, err, "failed to register download")
		return
	}
	h.responder.Respond(ctx, "downloadAdded", download, msg.RequestID)
}

func (h *Handler) handleDownloadProgress(ctx context.Context, msg Message) {
	download, err := h.downloads.UpdateProgress(ctx, entity.DownloadID(msg.DownloadID), msg.ReceivedBytes)
	if err != nil {
		h.fail(ctx, msg, err, "failed to update download progress")
		return
	}
	h.responder.Respond(ctx, "downloadProgress", download, msg.RequestID)
}

func (h *Handler) handleDownloadDelete(ctx context.Context, msg Message) {
	if err := h.downloads.Delete(ctx, entity.DownloadID(msg.DownloadID)); err != nil {
		h.fail(ctx, msg, err, "failed to delete download")
		return
	}
	h.responder.Respond(ctx, "downloadDeleted", map[string]int64{"deletedId": msg.DownloadID}, msg.RequestID)
}

func (h *Handler) handleDownloadsClear(ctx context.Context, msg Message) {
	if err := h.downloads.Clear(ctx); err != nil {
		h.fail(ctx, msg, err, "failed to clear downloads")
		return
	}
	h.responder.Respond(ctx, "downloadsCleared", map[string]bool{"cleared": true}, msg.RequestID)
}
