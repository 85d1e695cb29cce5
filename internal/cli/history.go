package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/skiff/internal/cli/model"
	"github.com/bnema/skiff/internal/cli/styles"
	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/logging"
)

const (
	defaultHistoryLimit = 20
	defaultSearchLimit  = 10
	maxURLDisplay       = 60
	maxTitleDisplay     = 40
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and manage history",
		Long: `Browse and manage history:
  (no subcommand) - interactive history browser
  list   - print recent history
  search - search through history
  clear  - clear history (with confirmation)
  stats  - show history statistics`,
		RunE: browseHistory,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history",
		RunE:  listHistory,
	}
	listCmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Number of entries to show")
	listCmd.Flags().Int("offset", 0, "Number of entries to skip")
	listCmd.Flags().Bool("json", false, "Output as JSON")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search through history",
		Args:  cobra.ExactArgs(1),
		RunE:  searchHistory,
	}
	searchCmd.Flags().IntP("limit", "n", defaultSearchLimit, "Number of results to show")
	searchCmd.Flags().Bool("json", false, "Output as JSON")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all history",
		Long:  `Clear all history. This action cannot be undone.`,
		RunE:  clearHistory,
	}
	clearCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show history statistics",
		RunE:  showHistoryStats,
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(searchCmd)
	cmd.AddCommand(clearCmd)
	cmd.AddCommand(statsCmd)

	return cmd
}

// browseHistory runs the interactive Bubble Tea history browser.
func browseHistory(cmd *cobra.Command, _ []string) error {
	app, err := NewApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(app)

	theme := styles.NewTheme(app.Config.Get().Appearance.AccentColor)
	program := tea.NewProgram(
		model.NewHistoryModel(app.History, theme),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("history browser failed: %w", err)
	}
	return nil
}

func listHistory(cmd *cobra.Command, _ []string) error {
	app, err := NewApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(app)

	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	asJSON, _ := cmd.Flags().GetBool("json")

	entries, err := app.History.Recent(app.Ctx(), limit, offset)
	if err != nil {
		return err
	}
	return printEntries(entries, asJSON)
}

func searchHistory(cmd *cobra.Command, args []string) error {
	app, err := NewApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(app)

	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	entries, err := app.History.Search(app.Ctx(), args[0], limit)
	if err != nil {
		return err
	}
	return printEntries(entries, asJSON)
}

func clearHistory(cmd *cobra.Command, _ []string) error {
	app, err := NewApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(app)

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		fmt.Print("Clear all history? This cannot be undone. [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := app.History.Clear(app.Ctx()); err != nil {
		return err
	}
	fmt.Println("History cleared.")
	return nil
}

func showHistoryStats(cmd *cobra.Command, _ []string) error {
	app, err := NewApp(cmd.Context())
	if err != nil {
		return err
	}
	defer closeApp(app)

	stats, err := app.History.Stats(app.Ctx())
	if err != nil {
		return err
	}

	fmt.Printf("Entries: %d\n", stats.TotalEntries)
	fmt.Printf("Visits:  %d\n", stats.TotalVisits)
	return nil
}

func printEntries(entries []*entity.HistoryEntry, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No history found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAST VISITED\tVISITS\tTITLE\tURL")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			entry.LastVisited.Format("2006-01-02 15:04"),
			entry.VisitCount,
			logging.TruncateURL(entry.Title, maxTitleDisplay),
			logging.TruncateURL(entry.URL, maxURLDisplay),
		)
	}
	return w.Flush()
}
