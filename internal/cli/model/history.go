// Package model contains the Bubble Tea models used by interactive
// CLI commands.
package model

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/skiff/internal/application/usecase"
	"github.com/bnema/skiff/internal/cli/styles"
	"github.com/bnema/skiff/internal/domain/entity"
)

const historyPageSize = 100

type historyLoadedMsg struct {
	entries []*entity.HistoryEntry
}

type historyDeletedMsg struct {
	id int64
}

type historyErrMsg struct {
	err error
}

// HistoryModel is the interactive history browser.
type HistoryModel struct {
	history *usecase.SearchHistoryUseCase
	theme   *styles.Theme
	keys    styles.HistoryKeyMap

	list      list.Model
	search    textinput.Model
	help      help.Model
	searching bool
	query     string
	err       error
	width     int
	height    int
}

// NewHistoryModel creates the history browser model.
func NewHistoryModel(history *usecase.SearchHistoryUseCase, theme *styles.Theme) *HistoryModel {
	return &HistoryModel{
		history: history,
		theme:   theme,
		keys:    styles.DefaultHistoryKeyMap(),
		list:    styles.NewHistoryList(theme, nil, 0, 0),
		search:  styles.NewSearchInput(theme),
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m *HistoryModel) Init() tea.Cmd {
	return m.loadHistory()
}

// Update implements tea.Model.
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case historyLoadedMsg:
		items := make([]list.Item, len(msg.entries))
		for i, entry := range msg.entries {
			items[i] = styles.HistoryItem{
				ID:          entry.ID,
				URL:         entry.URL,
				EntryTitle:  entry.Title,
				VisitCount:  entry.VisitCount,
				LastVisited: entry.LastVisited,
			}
		}
		m.err = nil
		return m, m.list.SetItems(items)

	case historyDeletedMsg:
		return m, m.loadHistory()

	case historyErrMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *HistoryModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.query = strings.TrimSpace(m.search.Value())
		m.search.Blur()
		return m, m.loadHistory()
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.query)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *HistoryModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue("")
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Open):
		if item, ok := m.list.SelectedItem().(styles.HistoryItem); ok {
			return m, openURL(item.URL)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.list.SelectedItem().(styles.HistoryItem); ok {
			return m, m.deleteEntry(item.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.query = ""
		m.search.SetValue("")
		return m, m.loadHistory()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *HistoryModel) View() string {
	var b strings.Builder

	if m.searching {
		b.WriteString(m.theme.Focused.Render(m.search.View()))
		b.WriteString("\n")
	} else if m.query != "" {
		b.WriteString(m.theme.Subtle.Render(fmt.Sprintf("filter: %q (r to reset)", m.query)))
		b.WriteString("\n")
	}

	b.WriteString(m.list.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.theme.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *HistoryModel) loadHistory() tea.Cmd {
	query := m.query
	return func() tea.Msg {
		ctx := context.Background()

		var (
			entries []*entity.HistoryEntry
			err     error
		)
		if query != "" {
			entries, err = m.history.Search(ctx, query, historyPageSize)
		} else {
			entries, err = m.history.Recent(ctx, historyPageSize, 0)
		}
		if err != nil {
			return historyErrMsg{err: err}
		}
		return historyLoadedMsg{entries: entries}
	}
}

func (m *HistoryModel) deleteEntry(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.history.Delete(context.Background(), id); err != nil {
			return historyErrMsg{err: err}
		}
		return historyDeletedMsg{id: id}
	}
}

// openURL hands the URL to the desktop URL handler.
func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		if err := exec.Command("xdg-open", url).Start(); err != nil {
			return historyErrMsg{err: fmt.Errorf("failed to open %s: %w", url, err)}
		}
		return nil
	}
}
