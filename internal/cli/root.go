package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/skiff/internal/config"
)

// NewRootCmd creates the root command for skiff.
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skiff [url]",
		Short: "A small embedded browser shell",
		Long:  `Skiff is a minimal browser shell with history, bookmarks and downloads kept on the host side.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runBrowse(cmd, args)
			}
			return cmd.Help()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("skiff %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built: %s\n", buildDate)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the skiff database and configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(app)

			fmt.Printf("skiff %s - initialization complete\n", version)
			dbPath := app.Config.Get().Database.Path
			if dbPath == "" {
				dbPath, _ = config.DefaultDatabasePath()
			}
			fmt.Println("Database initialized at:", dbPath)
			return nil
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(NewBrowseCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute(version, commit, buildDate string) {
	if err := NewRootCmd(version, commit, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// closeApp closes the app, warning instead of failing on close errors.
func closeApp(app *App) {
	if err := app.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
	}
}
