package controller

import (
	"github.com/bnema/skiff/internal/application/port"
	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/domain/url"
	"github.com/bnema/skiff/internal/logging"
	"github.com/bnema/skiff/internal/ui/errorpage"
	"github.com/bnema/skiff/internal/ui/panels"
)

// callbacksFor builds the content view callbacks for one tab. The tab ID is
// captured so events stay associated with their tab record regardless of
// tab bar position.
func (c *Controller) callbacksFor(id entity.TabID, view port.ContentView) *port.ContentViewCallbacks {
	return &port.ContentViewCallbacks{
		OnLoadChanged: func(event port.LoadEvent, failure string) {
			c.handleLoadChanged(id, view, event, failure)
		},
		OnTitleChanged: func(title string) {
			c.handleTitleChanged(id, title)
		},
		OnURIChanged: func(uri string) {
			c.handleURIChanged(id, uri)
		},
		OnCreate: func(request port.PopupRequest) bool {
			return c.handlePopup(request)
		},
	}
}

// handleLoadChanged drives the per-tab load state machine:
// Idle -> Loading -> {Loaded, Failed}, re-entering Loading on navigation.
func (c *Controller) handleLoadChanged(id entity.TabID, view port.ContentView, event port.LoadEvent, failure string) {
	log := logging.FromContext(logging.WithTabID(c.ctx, string(id)))

	c.mu.Lock()
	tab := c.tabs.Find(id)
	if tab == nil {
		c.mu.Unlock()
		return
	}

	errorPageCycle := c.showingErrorPage[id]
	switch event {
	case port.LoadStarted:
		if !errorPageCycle {
			tab.State = entity.LoadLoading
		}
	case port.LoadFinished:
		if errorPageCycle {
			// The error document finished loading; the tab stays Failed.
			delete(c.showingErrorPage, id)
		} else {
			tab.State = entity.LoadLoaded
		}
		tab.CanGoBack = view.CanGoBack()
		tab.CanGoForward = view.CanGoForward()
	case port.LoadFailed:
		tab.State = entity.LoadFailed
		c.showingErrorPage[id] = true
	}
	active := c.tabs.ActiveTabID == id
	pageURL := tab.URL
	c.mu.Unlock()

	log.Debug().Str("event", event.String()).Str("state", c.tabState(id).String()).Msg("load state changed")

	if event == port.LoadFailed {
		// Replace the content with a locally generated error document. The
		// failure never surfaces as an uncaught error.
		doc := errorpage.Render(pageURL, failure)
		if err := view.LoadHTML(c.ctx, doc, ""); err != nil {
			log.Warn().Err(err).Msg("failed to show error page")
		}
		c.notifier.Notify(port.NotifyError, "Page failed to load")
	}

	c.notifyTabsChanged()
	if active {
		c.refreshChrome()
	}
}

func (c *Controller) tabState(id entity.TabID) entity.LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tab := c.tabs.Find(id); tab != nil {
		return tab.State
	}
	return entity.LoadIdle
}

func (c *Controller) handleTitleChanged(id entity.TabID, title string) {
	c.mu.Lock()
	tab := c.tabs.Find(id)
	if tab == nil {
		c.mu.Unlock()
		return
	}
	tab.Title = title
	active := c.tabs.ActiveTabID == id
	pageURL := tab.URL
	c.mu.Unlock()

	// Backfill the history record's title now that the page announced it.
	if err := c.navigateUC.UpdateHistoryTitle(c.ctx, pageURL, title); err != nil {
		logging.FromContext(c.ctx).Warn().Err(err).Msg("failed to backfill history title")
	}

	c.notifyTabsChanged()
	if active {
		c.debouncer.Trigger(refreshTitle, func() {
			if c.observers.Title != nil {
				c.observers.Title(c.activeDisplayTitle())
			}
		})
	}
}

func (c *Controller) handleURIChanged(id entity.TabID, uri string) {
	c.mu.Lock()
	tab := c.tabs.Find(id)
	if tab == nil {
		c.mu.Unlock()
		return
	}
	if c.showingErrorPage[id] {
		// The error document load must not replace the URL the user tried
		// to reach.
		c.mu.Unlock()
		return
	}
	tab.URL = uri
	active := c.tabs.ActiveTabID == id
	c.mu.Unlock()

	c.notifyTabsChanged()
	if active {
		c.refreshChrome()
	}
}

// handlePopup decides whether a popup may open. User-gesture popups open in
// a new tab; scripted popups are blocked.
func (c *Controller) handlePopup(request port.PopupRequest) bool {
	log := logging.FromContext(c.ctx)

	if !request.IsUserGesture {
		log.Debug().Str("url", logging.TruncateURL(request.TargetURI, 60)).Msg("blocked scripted popup")
		return false
	}

	if _, err := c.NewTab(request.TargetURI); err != nil {
		log.Warn().Err(err).Msg("failed to open popup in new tab")
		return false
	}
	return true
}

// refreshChrome triggers the debounced refreshers for every chrome surface
// that tracks the active tab.
func (c *Controller) refreshChrome() {
	c.debouncer.Trigger(refreshNavButtons, func() {
		if c.observers.NavButtons == nil {
			return
		}
		view := c.ActiveView()
		if view == nil {
			c.observers.NavButtons(false, false)
			return
		}
		c.observers.NavButtons(view.CanGoBack(), view.CanGoForward())
	})

	c.debouncer.Trigger(refreshURLBar, func() {
		if c.observers.URLText == nil {
			return
		}
		c.observers.URLText(c.activeURL())
	})

	c.debouncer.Trigger(refreshTitle, func() {
		if c.observers.Title == nil {
			return
		}
		c.observers.Title(c.activeDisplayTitle())
	})

	c.debouncer.Trigger(refreshSecurity, func() {
		if c.observers.Security == nil {
			return
		}
		c.observers.Security(url.SecurityState(c.activeURL()))
	})
}

func (c *Controller) activeURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tab := c.tabs.ActiveTab(); tab != nil {
		return tab.URL
	}
	return ""
}

func (c *Controller) activeDisplayTitle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tab := c.tabs.ActiveTab(); tab != nil {
		return tab.DisplayTitle()
	}
	return ""
}

// --- bridge push-channel subscription ---

// OnNewTab implements bridge.Subscriber.
func (c *Controller) OnNewTab() {
	if _, err := c.NewTab(""); err != nil {
		logging.FromContext(c.ctx).Warn().Err(err).Msg("new-tab request failed")
	}
}

// OnCloseTab implements bridge.Subscriber.
func (c *Controller) OnCloseTab() {
	if err := c.CloseActiveTab(); err != nil {
		logging.FromContext(c.ctx).Warn().Err(err).Msg("close-tab request failed")
	}
}

// OnRequestQuit implements bridge.Subscriber.
func (c *Controller) OnRequestQuit() {
	if c.observers.Quit != nil {
		c.observers.Quit()
	}
}

// OnBrowserShortcut implements bridge.Subscriber.
func (c *Controller) OnBrowserShortcut(action string) {
	log := logging.FromContext(c.ctx)

	var err error
	switch action {
	case "new-tab":
		_, err = c.NewTab("")
	case "close-tab":
		err = c.CloseActiveTab()
	case "next-tab":
		err = c.NextTab(1)
	case "prev-tab":
		err = c.NextTab(-1)
	case "back":
		err = c.GoBack()
	case "forward":
		err = c.GoForward()
	case "reload":
		err = c.Reload()
	case "zoom-in":
		err = c.ZoomIn()
	case "zoom-out":
		err = c.ZoomOut()
	case "zoom-reset":
		err = c.ZoomReset()
	case "toggle-settings":
		c.panels.Toggle(panels.Settings)
	case "toggle-history":
		c.panels.Toggle(panels.History)
	case "toggle-downloads":
		c.panels.Toggle(panels.Downloads)
	case "toggle-bookmarks":
		c.panels.Toggle(panels.Bookmarks)
	case "toggle-shortcuts":
		c.panels.Toggle(panels.Shortcuts)
	case "close-panels":
		c.panels.CloseAll()
	default:
		log.Debug().Str("action", action).Msg("unknown shortcut action")
		return
	}

	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("shortcut action failed")
	}
}

// OnOpenPopupURL implements bridge.Subscriber.
func (c *Controller) OnOpenPopupURL(popupURL string) {
	if _, err := c.NewTab(popupURL); err != nil {
		logging.FromContext(c.ctx).Warn().Err(err).Msg("failed to open popup URL")
	}
}

// OnContextMenuAction implements bridge.Subscriber.
func (c *Controller) OnContextMenuAction(action, data string) {
	log := logging.FromContext(c.ctx)

	switch action {
	case "open-in-new-tab":
		if data == "" {
			return
		}
		if _, err := c.NewTab(data); err != nil {
			log.Warn().Err(err).Msg("failed to open link in new tab")
		}
	case "reload":
		if err := c.Reload(); err != nil {
			log.Warn().Err(err).Msg("reload from context menu failed")
		}
	case "back":
		if err := c.GoBack(); err != nil {
			log.Warn().Err(err).Msg("back from context menu failed")
		}
	case "forward":
		if err := c.GoForward(); err != nil {
			log.Warn().Err(err).Msg("forward from context menu failed")
		}
	default:
		log.Debug().Str("action", action).Msg("unknown context menu action")
	}
}
