package commands

import (
	"fmt"
	"os"

	"gin-event-calendar/config"
	"gin-event-calendar/pkg/logger"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "event-calendar",
	Short: "Monthly event calendar with RSVP profiles",
	Long: `event-calendar serves a JSON API for publishing events on a monthly
calendar grid and collecting RSVP profiles for them.

Configuration is read from an optional YAML file (--config or CONFIG_FILE)
and overridden by environment variables (DB_HOST, REDIS_HOST, PORT, ...).`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}
	return cfg, nil
}
