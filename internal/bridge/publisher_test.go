package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingSubscriber appends a label per event so ordering is observable.
type recordingSubscriber struct {
	events []string
}

func (s *recordingSubscriber) OnNewTab()      { s.events = append(s.events, "new-tab") }
func (s *recordingSubscriber) OnCloseTab()    { s.events = append(s.events, "close-tab") }
func (s *recordingSubscriber) OnRequestQuit() { s.events = append(s.events, "request-quit") }
func (s *recordingSubscriber) OnBrowserShortcut(action string) {
	s.events = append(s.events, "shortcut:"+action)
}
func (s *recordingSubscriber) OnOpenPopupURL(url string) {
	s.events = append(s.events, "popup:"+url)
}
func (s *recordingSubscriber) OnContextMenuAction(action, data string) {
	s.events = append(s.events, "context:"+action+":"+data)
}

func TestPublisher_PreservesEmissionOrder(t *testing.T) {
	p := NewPublisher()
	sub := &recordingSubscriber{}
	p.Subscribe(sub)

	p.NewTab()
	p.BrowserShortcut("zoom-in")
	p.OpenPopupURL("https://example.com/popup")
	p.ContextMenuAction("copy-link", "https://example.com")
	p.CloseTab()
	p.RequestQuit()

	assert.Equal(t, []string{
		"new-tab",
		"shortcut:zoom-in",
		"popup:https://example.com/popup",
		"context:copy-link:https://example.com",
		"close-tab",
		"request-quit",
	}, sub.events)
}

func TestPublisher_FanOutInSubscriptionOrder(t *testing.T) {
	p := NewPublisher()

	var order []string
	first := &orderedSubscriber{name: "first", order: &order}
	second := &orderedSubscriber{name: "second", order: &order}
	p.Subscribe(first)
	p.Subscribe(second)

	p.NewTab()

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPublisher_NoSubscribersIsNoop(t *testing.T) {
	p := NewPublisher()
	p.NewTab()
	p.RequestQuit()
}

func TestPublisher_NilSubscriberIgnored(t *testing.T) {
	p := NewPublisher()
	p.Subscribe(nil)
	p.NewTab()
}

type orderedSubscriber struct {
	name  string
	order *[]string
}

func (s *orderedSubscriber) OnNewTab()                      { *s.order = append(*s.order, s.name) }
func (s *orderedSubscriber) OnCloseTab()                    {}
func (s *orderedSubscriber) OnRequestQuit()                 {}
func (s *orderedSubscriber) OnBrowserShortcut(string)       {}
func (s *orderedSubscriber) OnOpenPopupURL(string)          {}
func (s *orderedSubscriber) OnContextMenuAction(a, d string) {}
