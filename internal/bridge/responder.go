package bridge

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/bnema/skiff/internal/application/port"
	"github.com/bnema/skiff/internal/logging"
)

// Responder delivers bridge call replies back to the UI.
type Responder interface {
	// Respond invokes the named UI callback with a JSON payload.
	// requestID, when non-empty, is passed as a second argument so the UI
	// can correlate the reply with its call.
	Respond(ctx context.Context, callback string, payload any, requestID string)
}

// errorCallback receives error payloads for failed bridge calls.
const errorCallback = "bridgeError"

// errorPayload is the reply body for a failed bridge call.
type errorPayload struct {
	Call    string `json:"call"`
	Message string `json:"message"`
}

// ScriptResponder injects replies into the page as calls on the
// window.__skiff callback namespace. A missing callback is a no-op on the
// page side, never an uncaught error.
type ScriptResponder struct {
	view port.ContentView
}

// NewScriptResponder creates a responder that replies through view scripts.
func NewScriptResponder(view port.ContentView) *ScriptResponder {
	return &ScriptResponder{view: view}
}

// Respond implements Responder.
func (r *ScriptResponder) Respond(ctx context.Context, callback string, payload any, requestID string) {
	log := logging.FromContext(ctx)

	body, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("callback", callback).Msg("failed to marshal bridge reply")
		return
	}

	script := "window.__skiff && window.__skiff." + callback +
		" && window.__skiff." + callback + "(" + string(body)
	if requestID != "" {
		script += ", " + strconv.Quote(requestID)
	}
	script += ")"

	if _, err := r.view.RunScript(ctx, script); err != nil {
		log.Warn().Err(err).Str("callback", callback).Msg("failed to inject bridge reply")
	}
}
