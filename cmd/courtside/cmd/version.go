package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the courtside CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "courtside version %s\n", version)
		fmt.Fprintln(out, "Win-probability trading engine and backtester")
		fmt.Fprintln(out, "https://github.com/rustyeddy/courtside")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
