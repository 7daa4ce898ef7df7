// polygove runs small real-time 3D scenes in the terminal.
//
// Usage:
//
//	polygove run [scene]     - Run a built-in scene or a scene file
//	polygove scenes          - List built-in scenes
//	polygove runs            - Show recent runs
//
// Global flags:
//
//	--config <path>     - Engine configuration file
//	--db <path>         - Run journal database (default from config)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a rotating file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polygove/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "polygove",
	Short: "polygove - a tiny real-time 3D engine for the terminal",
	Long: `polygove simulates scenes of 3D entities at a fixed tick rate and
draws them in the terminal.

Available commands:
  run      - Run a scene
  scenes   - Show built-in scenes
  runs     - Show the run journal

Examples:
  polygove run demo
  polygove run pinball --headless --ticks 600
  polygove run --scene-file ./garage.yaml
  polygove runs --limit 5`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run journal database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Logging.File = flagLogFile
	}
	cfg.Storage.Path = config.ExpandHome(cfg.Storage.Path)
	return cfg, cfg.Validate()
}
