// Package controller owns the shell UI state: the tab list, the per-tab
// content views, debounced chrome refreshers and the push-channel
// subscriptions. It is the only writer of tab state.
package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/skiff/internal/application/port"
	"github.com/bnema/skiff/internal/application/usecase"
	"github.com/bnema/skiff/internal/config"
	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/domain/url"
	"github.com/bnema/skiff/internal/logging"
	"github.com/bnema/skiff/internal/ui/mainloop"
	"github.com/bnema/skiff/internal/ui/panels"
)

// Debounce keys for the chrome refreshers.
const (
	refreshNavButtons = "nav-buttons"
	refreshURLBar     = "urlbar"
	refreshTitle      = "title"
	refreshSecurity   = "security"
)

// Coalescer key for tab list change notifications.
const tabsChangedKey = "tabs-changed"

// ViewFactory creates a content view for a new tab.
type ViewFactory func() port.ContentView

// Observers receives chrome update notifications. All callbacks are optional
// and are invoked after the debounce window settles.
type Observers struct {
	// TabsChanged fires after tab list mutations. Bursts within one posted
	// main-loop task collapse to a single call carrying the final state.
	TabsChanged func(tabs *entity.TabList)
	// NavButtons fires with the active view's history capabilities.
	NavButtons func(canGoBack, canGoForward bool)
	// URLText fires with the text the URL bar should show.
	URLText func(text string)
	// Title fires with the active tab's display title.
	Title func(title string)
	// Security fires with the security state of the active URL.
	Security func(state url.Security)
	// Quit fires when the UI requests application shutdown.
	Quit func()
}

// Options configures a Controller.
type Options struct {
	Tabs        *usecase.ManageTabsUseCase
	Navigate    *usecase.NavigateUseCase
	Config      *config.Manager
	Panels      *panels.Manager
	Debouncer   *mainloop.Debouncer
	Coalescer   *mainloop.Coalescer
	ViewFactory ViewFactory
	Notifier    port.Notifier
	Observers   Observers
}

// Controller drives the shell UI.
type Controller struct {
	ctx context.Context

	tabsUC     *usecase.ManageTabsUseCase
	navigateUC *usecase.NavigateUseCase
	cfg        *config.Manager
	panels     *panels.Manager
	debouncer  *mainloop.Debouncer
	coalescer  *mainloop.Coalescer
	newView    ViewFactory
	notifier   port.Notifier
	observers  Observers

	mu    sync.Mutex
	tabs  *entity.TabList
	views map[entity.TabID]port.ContentView
	// showingErrorPage marks tabs whose view is loading the locally
	// generated error document, so its synthetic load cycle does not
	// clobber the Failed state.
	showingErrorPage map[entity.TabID]bool
}

// New creates a controller. Call Start to open the initial tab.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Tabs == nil || opts.Navigate == nil || opts.Config == nil {
		return nil, fmt.Errorf("tabs, navigate and config are required")
	}
	if opts.ViewFactory == nil {
		return nil, fmt.Errorf("view factory is required")
	}
	if opts.Panels == nil {
		opts.Panels = panels.NewManager()
	}
	if opts.Debouncer == nil {
		opts.Debouncer = mainloop.NewDebouncer(mainloop.DefaultDebounceDelay)
	}
	if opts.Coalescer == nil {
		// Direct post; a real shell posts to its main loop instead.
		opts.Coalescer = mainloop.NewCoalescer(func(fn func()) { fn() })
	}
	if opts.Notifier == nil {
		opts.Notifier = port.NopNotifier{}
	}

	return &Controller{
		ctx:              ctx,
		tabsUC:           opts.Tabs,
		navigateUC:       opts.Navigate,
		cfg:              opts.Config,
		panels:           opts.Panels,
		debouncer:        opts.Debouncer,
		coalescer:        opts.Coalescer,
		newView:          opts.ViewFactory,
		notifier:         opts.Notifier,
		observers:        opts.Observers,
		tabs:             entity.NewTabList(),
		views:            make(map[entity.TabID]port.ContentView),
		showingErrorPage: make(map[entity.TabID]bool),
	}, nil
}

// Start opens the initial tab on the configured homepage.
func (c *Controller) Start() error {
	homepage := c.cfg.Get().Settings().Homepage
	_, err := c.NewTab(homepage)
	return err
}

// Close tears down debounced and coalesced work. The navigate use case is
// closed by its owner.
func (c *Controller) Close() {
	c.debouncer.Destroy()
	c.coalescer.Destroy()
}

// Panels exposes the overlay panel manager.
func (c *Controller) Panels() *panels.Manager {
	return c.panels
}

// Tabs returns the live tab list. Callers must treat it as read-only.
func (c *Controller) Tabs() *entity.TabList {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tabs
}

// ActiveView returns the content view of the active tab, or nil when no tab
// is open.
func (c *Controller) ActiveView() port.ContentView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeViewLocked()
}

func (c *Controller) activeViewLocked() port.ContentView {
	active := c.tabs.ActiveTab()
	if active == nil {
		return nil
	}
	return c.views[active.ID]
}

// NewTab creates a tab, attaches a fresh content view and activates it.
// initialURL may be empty for a blank tab.
func (c *Controller) NewTab(initialURL string) (*entity.Tab, error) {
	c.mu.Lock()
	tab, err := c.tabsUC.Create(c.ctx, usecase.CreateTabInput{
		TabList:  c.tabs,
		Activate: true,
	})
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	view := c.attachViewLocked(tab.ID)
	c.mu.Unlock()

	c.notifyTabsChanged()

	if initialURL != "" && initialURL != "about:blank" {
		if err := c.navigateView(tab, view, initialURL); err != nil {
			logging.FromContext(c.ctx).Warn().Err(err).Str("url", initialURL).Msg("initial navigation failed")
		}
	}

	c.refreshChrome()
	return tab, nil
}

// CloseTab closes the given tab. Closing the last tab leaves a fresh blank
// tab so the window never ends up empty.
func (c *Controller) CloseTab(id entity.TabID) error {
	c.mu.Lock()
	if c.tabs.Find(id) == nil {
		c.mu.Unlock()
		return nil
	}
	delete(c.views, id)

	replacement, err := c.tabsUC.Close(c.ctx, c.tabs, id)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if replacement != nil {
		c.attachViewLocked(replacement.ID)
	}
	c.mu.Unlock()

	c.notifyTabsChanged()
	c.refreshChrome()
	return nil
}

// CloseActiveTab closes the currently active tab.
func (c *Controller) CloseActiveTab() error {
	c.mu.Lock()
	active := c.tabs.ActiveTab()
	c.mu.Unlock()
	if active == nil {
		return nil
	}
	return c.CloseTab(active.ID)
}

// SwitchTab activates the given tab.
func (c *Controller) SwitchTab(id entity.TabID) error {
	c.mu.Lock()
	err := c.tabsUC.Switch(c.ctx, c.tabs, id)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	c.notifyTabsChanged()
	// Tab switches swap the whole chrome; flush rather than wait out the
	// debounce window.
	c.refreshChrome()
	c.debouncer.FlushAll()
	return nil
}

// NextTab activates the adjacent tab in the given direction (1 or -1),
// wrapping around.
func (c *Controller) NextTab(direction int) error {
	c.mu.Lock()
	next := c.tabsUC.GetNext(c.tabs, direction)
	c.mu.Unlock()
	if next == "" {
		return nil
	}
	return c.SwitchTab(next)
}

// ReorderTabs rebuilds tab order from the tab bar's ID sequence. The
// sequence must be an exact permutation; a stale drag is rejected without
// touching the list.
func (c *Controller) ReorderTabs(ids []entity.TabID) error {
	c.mu.Lock()
	err := c.tabsUC.Reorder(c.ctx, c.tabs, ids)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	c.notifyTabsChanged()
	return nil
}

// attachViewLocked creates and registers the content view for a tab and
// wires its event callbacks. Caller holds c.mu.
func (c *Controller) attachViewLocked(id entity.TabID) port.ContentView {
	view := c.newView()
	c.views[id] = view
	view.SetCallbacks(c.callbacksFor(id, view))
	return view
}

func (c *Controller) notifyTabsChanged() {
	if c.observers.TabsChanged == nil {
		return
	}
	// Mutations often come in bursts (close + activate replacement, reorder
	// + reindex); only the final state reaches the observer.
	c.coalescer.Post(tabsChangedKey, func() {
		c.mu.Lock()
		tabs := c.tabs
		c.mu.Unlock()
		c.observers.TabsChanged(tabs)
	})
}
