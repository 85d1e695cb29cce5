package controller

import (
	"fmt"

	"github.com/bnema/skiff/internal/domain/entity"
)

// DropIndex computes the insertion index for a tab dropped over the tab at
// targetIndex. pointerOffset is the pointer x relative to the target tab's
// left edge: before the midpoint inserts before the target, past it inserts
// after. Indexes are in terms of the list including the dragged tab.
func DropIndex(targetIndex int, pointerOffset, tabWidth float64) int {
	if tabWidth <= 0 || pointerOffset < tabWidth/2 {
		return targetIndex
	}
	return targetIndex + 1
}

// DropTab completes a drag: it moves the dragged tab to the position decided
// by the midpoint test and rebuilds the order through the validated reorder
// path, so the identifier keeps pointing at the same tab record.
func (c *Controller) DropTab(dragged entity.TabID, targetIndex int, pointerOffset, tabWidth float64) error {
	c.mu.Lock()
	count := c.tabs.Count()
	if targetIndex < 0 || targetIndex >= count {
		c.mu.Unlock()
		return fmt.Errorf("drop target %d out of range", targetIndex)
	}
	if c.tabs.Find(dragged) == nil {
		c.mu.Unlock()
		return fmt.Errorf("unknown dragged tab: %s", dragged)
	}

	insert := DropIndex(targetIndex, pointerOffset, tabWidth)

	ids := make([]entity.TabID, 0, count)
	origPos := -1
	for i, tab := range c.tabs.Tabs {
		if tab.ID == dragged {
			origPos = i
			continue
		}
		ids = append(ids, tab.ID)
	}
	if origPos < insert {
		insert--
	}
	if insert < 0 {
		insert = 0
	}
	if insert > len(ids) {
		insert = len(ids)
	}

	ids = append(ids[:insert], append([]entity.TabID{dragged}, ids[insert:]...)...)
	c.mu.Unlock()

	return c.ReorderTabs(ids)
}
