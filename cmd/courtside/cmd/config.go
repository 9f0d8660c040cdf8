package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/courtside/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  courtside config init -o courtside.yaml
  courtside config validate -f courtside.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "courtside.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	_ = configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(w, "\nEdit the file and run with:")
	fmt.Fprintf(w, "  courtside --config %s backtest <dataset>\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(w, "  Account:  $%.2f (trailing stop %.0f%%)\n", c.Account.Capital, c.Account.TrailingStopPct*100)
	fmt.Fprintf(w, "  Strategy: %s (alpha %.2f, beta %.2f, exposure %.0f%%)\n",
		c.Strategy.Instrument, c.Strategy.Alpha, c.Strategy.Beta, c.Strategy.Risk.MaxExposurePct*100)
	fmt.Fprintf(w, "  Journal:  %s\n", c.Journal.Type)
	return nil
}
