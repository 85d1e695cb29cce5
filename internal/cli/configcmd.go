package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/skiff/internal/config"
)

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and modify configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(app)

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(app.Config.Get())
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration option",
		Long: `Set a configuration option by its setting key, for example:
  skiff config set theme dark
  skiff config set default_zoom 1.25`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(app)

			if err := app.Config.Set(app.Ctx(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			schema, err := config.SchemaJSON()
			if err != nil {
				return err
			}
			fmt.Println(string(schema))
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration directories",
		RunE: func(_ *cobra.Command, _ []string) error {
			dirs, err := config.GetXDGDirs()
			if err != nil {
				return err
			}
			fmt.Println("config:", dirs.ConfigHome)
			fmt.Println("data:  ", dirs.DataHome)
			fmt.Println("state: ", dirs.StateHome)
			return nil
		},
	}

	cmd.AddCommand(showCmd)
	cmd.AddCommand(setCmd)
	cmd.AddCommand(schemaCmd)
	cmd.AddCommand(pathCmd)
	return cmd
}
