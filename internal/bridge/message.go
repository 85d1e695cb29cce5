// Package bridge implements the privileged surface between the host and the
// UI layer running inside the content view: a typed call catalog with
// script-injection replies, and host-to-UI push channels.
package bridge

import "encoding/json"

// Message is the envelope for UI-to-host bridge calls.
type Message struct {
	Type string `json:"type"`
	// RequestID correlates a reply with its originating call. Optional.
	RequestID string `json:"requestId"`

	// Navigation and bookmarks
	URL        string `json:"url"`
	Title      string `json:"title"`
	FaviconURL string `json:"faviconURL"`

	// Settings
	Key   string `json:"key"`
	Value string `json:"value"`

	// History
	Q         string `json:"q"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	HistoryID string `json:"historyId"`

	// Downloads
	DownloadID    int64  `json:"downloadId"`
	Filename      string `json:"filename"`
	Path          string `json:"path"`
	Size          int64  `json:"size"`
	ReceivedBytes int64  `json:"receivedBytes"`

	// Free-form payload for calls carrying structured arguments.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ParseMessage decodes a bridge call envelope from the raw script message.
func ParseMessage(payload string) (Message, error) {
	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
