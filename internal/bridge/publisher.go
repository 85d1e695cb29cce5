package bridge

import "sync"

// Subscriber receives host-to-UI push events. All methods are invoked
// synchronously on the publishing goroutine, in emission order.
// Fire-and-forget: subscribers cannot reject or fail an event.
type Subscriber interface {
	OnNewTab()
	OnCloseTab()
	OnRequestQuit()
	OnBrowserShortcut(action string)
	OnOpenPopupURL(url string)
	OnContextMenuAction(action, data string)
}

// Publisher fans push events out to subscribers. Synchronous direct fan-out
// preserves emission order: an event emitted before another is observed
// before it by every subscriber.
type Publisher struct {
	mu          sync.Mutex
	subscribers []Subscriber
}

// NewPublisher creates an empty publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Subscribe registers a subscriber. Events are delivered in subscription
// order.
func (p *Publisher) Subscribe(s Subscriber) {
	if s == nil {
		return
	}
	p.mu.Lock()
	p.subscribers = append(p.subscribers, s)
	p.mu.Unlock()
}

func (p *Publisher) snapshot() []Subscriber {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Subscriber, len(p.subscribers))
	copy(out, p.subscribers)
	return out
}

// NewTab requests a new tab.
func (p *Publisher) NewTab() {
	for _, s := range p.snapshot() {
		s.OnNewTab()
	}
}

// CloseTab requests closing the active tab.
func (p *Publisher) CloseTab() {
	for _, s := range p.snapshot() {
		s.OnCloseTab()
	}
}

// RequestQuit requests application shutdown.
func (p *Publisher) RequestQuit() {
	for _, s := range p.snapshot() {
		s.OnRequestQuit()
	}
}

// BrowserShortcut forwards a named shortcut action.
func (p *Publisher) BrowserShortcut(action string) {
	for _, s := range p.snapshot() {
		s.OnBrowserShortcut(action)
	}
}

// OpenPopupURL requests opening a popup URL in a new tab.
func (p *Publisher) OpenPopupURL(url string) {
	for _, s := range p.snapshot() {
		s.OnOpenPopupURL(url)
	}
}

// ContextMenuAction forwards a context menu action with its payload.
func (p *Publisher) ContextMenuAction(action, data string) {
	for _, s := range p.snapshot() {
		s.OnContextMenuAction(action, data)
	}
}
