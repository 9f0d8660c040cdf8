package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/courtside/feed"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <dataset.json>",
	Short: "List the distinct values of every field in a recorded game",
	Long: `Inspect reads a JSON array of event records and prints, for every key, the
sorted set of values it takes. Nulls are listed last.

Example:
  courtside inspect data/game_0042.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	fields, err := feed.UniqueValues(f)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	w := cmd.OutOrStdout()
	for _, fv := range fields {
		fmt.Fprintf(w, "%s (%d):\n", fv.Key, len(fv.Values))
		for _, v := range fv.Values {
			if v == nil {
				fmt.Fprintln(w, "  null")
				continue
			}
			fmt.Fprintf(w, "  %v\n", v)
		}
	}
	return nil
}
