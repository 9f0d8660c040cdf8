package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/courtside/config"
	"github.com/rustyeddy/courtside/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "courtside",
	Short: "Win-probability trading engine and backtester for basketball markets",
	Long: `Courtside turns a play-by-play game feed into a live home-win probability
and trades a single binary market when the quoted price strays too far from it.

It provides tools for:
  - Backtesting the engine over a recorded game (JSON or CSV)
  - Grid-searching engine parameters
  - Running a paper session against a websocket feed
  - Journaling runs, fills and equity curves to SQLite or CSV

Complete documentation is available at https://github.com/rustyeddy/courtside`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile  string
	logLevel string

	// cfg is resolved once per invocation by setup.
	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults apply when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg = config.Default()
		if err = cfg.ApplyEnv(); err == nil {
			err = cfg.Validate()
		}
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	telemetry.InitWriter(cmd.ErrOrStderr(), telemetry.ParseLogLevel(cfg.Log.Level))
	return nil
}
