// Root command for the todos CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todos/internal/paths"
	"github.com/mesh-intelligence/todos/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
)

// cfg is the effective configuration assembled by PersistentPreRunE
// from the config file, environment, and flags. All subcommands read it.
var cfg types.Config

var rootCmd = &cobra.Command{
	Use:     "todos",
	Short:   "Todos is a personal task-tracking web service",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The version command needs no configuration.
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		v, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		dataDir, err := paths.ResolveDataDir(flagDataDir, v.GetString(cfgKeyDataDir))
		if err != nil {
			return err
		}

		cfg = types.Config{
			DataDir:    dataDir,
			ListenAddr: v.GetString(cfgKeyListenAddr),
			WebhookURL: v.GetString(cfgKeyWebhookURL),
			Production: v.GetBool(cfgKeyProduction),
			LogLevel:   v.GetString(cfgKeyLogLevel),
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.todos-data)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > TODOS_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
