// The export and import commands: JSONL backup and restore of the
// todos table.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/sqlite"
)

const defaultJSONLFile = "todos.jsonl"

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all todos to a JSONL file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultJSONLFile
		if len(args) == 1 {
			path = args[0]
		}

		store, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		if err := store.ExportJSONL(cmd.Context(), path); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("exported todos to %s\n", path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import todos from a JSONL file",
	Long: `Import todos from a JSONL file. Existing todos with matching IDs
are replaced; malformed lines are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultJSONLFile
		if len(args) == 1 {
			path = args[0]
		}

		store, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		if err := store.ImportJSONL(cmd.Context(), path); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		fmt.Printf("imported todos from %s\n", path)
		return nil
	},
}
