package controller

import (
	"context"
	"fmt"

	"github.com/bnema/skiff/internal/application/port"
	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/logging"
)

// Zoom bounds match the config validation range.
const (
	zoomStep = 0.1
	zoomMin  = 0.25
	zoomMax  = 5.0
)

// NavigateInput resolves free-form omnibox input and loads it in the active
// tab. Implements the bridge Navigator.
func (c *Controller) NavigateInput(ctx context.Context, input string) error {
	c.mu.Lock()
	tab := c.tabs.ActiveTab()
	view := c.activeViewLocked()
	c.mu.Unlock()

	if tab == nil || view == nil {
		return fmt.Errorf("no active tab")
	}
	_ = ctx
	return c.navigateView(tab, view, input)
}

// navigateView resolves input and drives the given tab's view. The tab URL
// is set before the load starts so a failing load reports the URL it was
// trying to reach.
func (c *Controller) navigateView(tab *entity.Tab, view port.ContentView, input string) error {
	ctx := logging.WithTabID(c.ctx, string(tab.ID))

	target := c.navigateUC.Resolve(input)
	if target == "" {
		return fmt.Errorf("empty navigation input")
	}

	c.mu.Lock()
	tab.URL = target
	c.mu.Unlock()
	c.notifyTabsChanged()

	if _, err := c.navigateUC.Execute(ctx, view, input); err != nil {
		return err
	}
	return nil
}

// GoBack navigates the active view back.
func (c *Controller) GoBack() error {
	view := c.ActiveView()
	if view == nil || !view.CanGoBack() {
		return nil
	}
	return view.GoBack(c.ctx)
}

// GoForward navigates the active view forward.
func (c *Controller) GoForward() error {
	view := c.ActiveView()
	if view == nil || !view.CanGoForward() {
		return nil
	}
	return view.GoForward(c.ctx)
}

// Reload reloads the active view.
func (c *Controller) Reload() error {
	view := c.ActiveView()
	if view == nil {
		return nil
	}
	return view.Reload(c.ctx)
}

// Stop stops the active view's load.
func (c *Controller) Stop() error {
	view := c.ActiveView()
	if view == nil {
		return nil
	}
	return view.Stop(c.ctx)
}

// ZoomIn increases the active view's zoom by one step.
func (c *Controller) ZoomIn() error {
	return c.adjustZoom(zoomStep)
}

// ZoomOut decreases the active view's zoom by one step.
func (c *Controller) ZoomOut() error {
	return c.adjustZoom(-zoomStep)
}

// ZoomReset restores the configured default zoom.
func (c *Controller) ZoomReset() error {
	view := c.ActiveView()
	if view == nil {
		return nil
	}
	return view.SetZoomLevel(c.ctx, c.cfg.Get().Settings().DefaultZoom)
}

func (c *Controller) adjustZoom(delta float64) error {
	view := c.ActiveView()
	if view == nil {
		return nil
	}

	level := view.ZoomLevel() + delta
	if level < zoomMin {
		level = zoomMin
	}
	if level > zoomMax {
		level = zoomMax
	}
	return view.SetZoomLevel(c.ctx, level)
}

// FindInPage forwards an in-page search to the active view.
func (c *Controller) FindInPage(text string, options port.FindOptions) (bool, error) {
	view := c.ActiveView()
	if view == nil {
		return false, nil
	}
	return view.Find(c.ctx, text, options)
}
