// Package usecase implements application operations on top of the domain
// layer and ports.
package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/domain/url"
	"github.com/bnema/skiff/internal/logging"
)

// IDGenerator is a function type for generating unique tab IDs.
type IDGenerator func() entity.TabID

// TimestampIDGenerator derives tab IDs from the creation timestamp,
// disambiguating same-nanosecond collisions with a counter.
func TimestampIDGenerator() IDGenerator {
	var counter atomic.Uint64
	return func() entity.TabID {
		n := counter.Add(1)
		return entity.TabID(strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + strconv.FormatUint(n, 10))
	}
}

// ManageTabsUseCase handles tab lifecycle operations.
type ManageTabsUseCase struct {
	idGenerator IDGenerator
}

// NewManageTabsUseCase creates a new tab management use case.
func NewManageTabsUseCase(idGenerator IDGenerator) *ManageTabsUseCase {
	return &ManageTabsUseCase{
		idGenerator: idGenerator,
	}
}

// CreateTabInput contains parameters for creating a new tab.
type CreateTabInput struct {
	TabList    *entity.TabList
	Name       string // Optional custom name
	InitialURL string // URL to load (empty = blank tab)
	Activate   bool
}

// Create creates a new tab and appends it to the list.
func (uc *ManageTabsUseCase) Create(ctx context.Context, input CreateTabInput) (*entity.Tab, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("name", input.Name).
		Str("initial_url", input.InitialURL).
		Msg("creating new tab")

	if input.TabList == nil {
		return nil, fmt.Errorf("tab list is required")
	}

	tab := entity.NewTab(uc.idGenerator())
	tab.Name = input.Name
	if input.InitialURL != "" {
		tab.URL = url.Normalize(input.InitialURL)
	}

	input.TabList.Add(tab)
	if input.Activate {
		input.TabList.ActiveTabID = tab.ID
	}

	log.Info().
		Str("tab_id", string(tab.ID)).
		Int("position", tab.Position).
		Msg("tab created")

	return tab, nil
}

// Close removes a tab from the list. Closing the last remaining tab creates
// a fresh blank tab, so at least one tab always exists afterwards.
// Returns the replacement tab when one was created, nil otherwise.
func (uc *ManageTabsUseCase) Close(ctx context.Context, tabs *entity.TabList, tabID entity.TabID) (*entity.Tab, error) {
	ctx = logging.WithTabID(ctx, string(tabID))
	log := logging.FromContext(ctx)
	log.Debug().Msg("closing tab")

	if tabs == nil {
		return nil, fmt.Errorf("tab list is required")
	}

	if tabs.Find(tabID) == nil {
		log.Debug().Msg("tab not found")
		return nil, nil
	}

	tabs.Remove(tabID)

	if tabs.Count() == 0 {
		log.Info().Msg("closed last tab, creating a fresh one")
		return uc.Create(ctx, CreateTabInput{TabList: tabs, Activate: true})
	}

	log.Info().
		Str("new_active", string(tabs.ActiveTabID)).
		Int("remaining", tabs.Count()).
		Msg("tab closed")

	return nil, nil
}

// Switch changes the active tab.
func (uc *ManageTabsUseCase) Switch(ctx context.Context, tabs *entity.TabList, tabID entity.TabID) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("tab_id", string(tabID)).Msg("switching to tab")

	if tabs == nil {
		return fmt.Errorf("tab list is required")
	}

	tab := tabs.Find(tabID)
	if tab == nil {
		return fmt.Errorf("tab not found: %s", tabID)
	}

	oldActive := tabs.ActiveTabID
	tabs.ActiveTabID = tabID

	log.Info().
		Str("from", string(oldActive)).
		Str("to", string(tabID)).
		Msg("tab switched")

	return nil
}

// Move repositions a tab within the tab bar.
func (uc *ManageTabsUseCase) Move(ctx context.Context, tabs *entity.TabList, tabID entity.TabID, newPosition int) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("tab_id", string(tabID)).
		Int("new_position", newPosition).
		Msg("moving tab")

	if tabs == nil {
		return fmt.Errorf("tab list is required")
	}

	if !tabs.Move(tabID, newPosition) {
		return fmt.Errorf("failed to move tab to position %d", newPosition)
	}

	return nil
}

// Reorder rebuilds tab order from the tab bar's ID sequence after a drag.
func (uc *ManageTabsUseCase) Reorder(ctx context.Context, tabs *entity.TabList, ids []entity.TabID) error {
	log := logging.FromContext(ctx)
	log.Debug().Int("count", len(ids)).Msg("reordering tabs")

	if tabs == nil {
		return fmt.Errorf("tab list is required")
	}

	if err := tabs.ReorderFromIDs(ids); err != nil {
		return fmt.Errorf("reorder rejected: %w", err)
	}

	log.Info().Int("count", tabs.Count()).Msg("tabs reordered")
	return nil
}

// GetNext returns the next tab ID in the given direction, wrapping around.
// direction: 1 for next, -1 for previous.
func (uc *ManageTabsUseCase) GetNext(tabs *entity.TabList, direction int) entity.TabID {
	if tabs == nil || tabs.Count() == 0 {
		return ""
	}

	activeTab := tabs.ActiveTab()
	if activeTab == nil {
		return tabs.Tabs[0].ID
	}

	newPos := activeTab.Position + direction
	if newPos < 0 {
		newPos = tabs.Count() - 1
	} else if newPos >= tabs.Count() {
		newPos = 0
	}

	return tabs.Tabs[newPos].ID
}
