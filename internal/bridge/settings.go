package bridge

import "context"

func (h *Handler) handleSettingsGetAll(ctx context.Context, msg Message) {
	settings := h.config.Get().Settings()
	h.responder.Respond(ctx, "settings", settings, msg.RequestID)
}

func (h *Handler) handleSettingsSet(ctx context.Context, msg Message) {
	if msg.Key == "" {
		h.fail(ctx, msg, nil, "settings_set requires a key")
		return
	}

	if err := h.config.Set(ctx, msg.Key, msg.Value); err != nil {
		h.fail(ctx, msg, err, "failed to save setting")
		return
	}

	h.responder.Respond(ctx, "settingSaved", map[string]string{
		"key":   msg.Key,
		"value": msg.Value,
	}, msg.RequestID)
}
