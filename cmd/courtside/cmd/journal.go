package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/courtside/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journaled backtest runs",
	Long: `Query backtest runs recorded in a SQLite journal.

Subcommands:
  runs   - List the most recent runs
  fills  - List the fills of one run
  org    - Print an Org-mode report of one run

Examples:
  courtside journal runs -n 20
  courtside journal fills 01JQ3Z...
  courtside journal org 01JQ3Z... >> runs.org`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the most recent runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalFillsCmd = &cobra.Command{
	Use:   "fills <run-id>",
	Short: "List the fills of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalFills,
}

var journalOrgCmd = &cobra.Command{
	Use:   "org <run-id>",
	Short: "Print an Org-mode report of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOrg,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalFillsCmd)
	journalCmd.AddCommand(journalOrgCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default from config)")
	journalRunsCmd.Flags().IntVarP(&journalLimit, "limit", "n", 10, "number of runs to list")
}

func openSQLite() (*journal.SQLite, error) {
	path := cfg.Journal.DBPath
	if journalDBPath != "" {
		path = journalDBPath
	}
	if path == "" {
		return nil, fmt.Errorf("no journal db: pass --db or set journal.db_path")
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns(journalLimit)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-26s  %-19s  %12s  %8s  %7s  %6s  %s\n", "RUN", "CREATED", "PNL", "RETURN", "MAX DD", "TRADES", "DATASET")
	for _, r := range runs {
		fmt.Fprintf(w, "%-26s  %-19s  %12.2f  %7.2f%%  %6.2f%%  %6d  %s\n",
			r.RunID, r.Created.Local().Format("2006-01-02 15:04:05"), r.PnL, r.ReturnPct(), r.MaxDrawdown*100, r.NumTrades, r.Dataset)
	}
	return nil
}

func runJournalFills(cmd *cobra.Command, args []string) error {
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	if _, err := j.GetRun(args[0]); err != nil {
		return err
	}
	fills, err := j.ListFillsByRunID(args[0])
	if err != nil {
		return fmt.Errorf("query fills: %w", err)
	}

	w := cmd.OutOrStdout()
	for _, f := range fills {
		fmt.Fprintln(w, journal.FormatFillOrg(f))
	}
	if len(fills) == 0 {
		fmt.Fprintln(w, "no fills")
	}
	return nil
}

func runJournalOrg(cmd *cobra.Command, args []string) error {
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	out, err := j.ExportRunOrg(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
