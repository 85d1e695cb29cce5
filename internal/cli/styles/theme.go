// Package styles provides the lipgloss theme and Bubble Tea components
// shared by the CLI commands.
package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles derived from the configured accent color.
type Theme struct {
	Accent  lipgloss.Color
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Badge   lipgloss.Style
	Error   lipgloss.Style
	Focused lipgloss.Style
}

// NewTheme builds a theme around the accent color from the config.
func NewTheme(accentColor string) *Theme {
	accent := lipgloss.Color(accentColor)
	return &Theme{
		Accent: accent,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(accent).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Focused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
	}
}

// HistoryItem adapts a history entry to the bubbles list.
type HistoryItem struct {
	ID          int64
	URL         string
	EntryTitle  string
	VisitCount  int64
	LastVisited time.Time
}

// FilterValue implements list.Item.
func (i HistoryItem) FilterValue() string { return i.EntryTitle + " " + i.URL }

// Title implements list.DefaultItem.
func (i HistoryItem) Title() string {
	if i.EntryTitle != "" {
		return i.EntryTitle
	}
	return i.URL
}

// Description implements list.DefaultItem.
func (i HistoryItem) Description() string {
	return fmt.Sprintf("%s • %d visits • %s", i.URL, i.VisitCount, i.LastVisited.Format("2006-01-02 15:04"))
}

// NewHistoryList builds the list component for history entries.
func NewHistoryList(theme *Theme, items []HistoryItem, width, height int) list.Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Accent).
		BorderLeftForeground(theme.Accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.Accent).
		BorderLeftForeground(theme.Accent)

	l := list.New(listItems, delegate, width, height)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return l
}

// NewSearchInput builds the search text input.
func NewSearchInput(theme *Theme) textinput.Model {
	input := textinput.New()
	input.Placeholder = "search history..."
	input.Prompt = "/ "
	input.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	return input
}

// HistoryKeyMap defines the keybindings of the history browser.
type HistoryKeyMap struct {
	Open   key.Binding
	Search key.Binding
	Delete key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultHistoryKeyMap returns the default keybindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Search, k.Delete, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Search, k.Delete},
		{k.Reload, k.Help, k.Quit},
	}
}
