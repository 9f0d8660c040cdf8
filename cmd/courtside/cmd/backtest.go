package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/courtside/backtest"
	"github.com/rustyeddy/courtside/journal"
	"github.com/rustyeddy/courtside/strategy"
	"github.com/rustyeddy/courtside/telemetry"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest [dataset]",
	Short: "Replay a recorded game through the engine",
	Long: `Backtest replays a recorded game (JSON array or CSV) through the decision
engine, fills every order against a simulated account and reports the
equity curve statistics.

The dataset may come from the argument or from backtest.dataset in the
config file.

Example:
  courtside backtest data/game_0042.json --journal sqlite --db runs.sqlite
  courtside backtest data/game_0042.csv --org game_0042.org`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBacktest,
}

var (
	btFormat  string
	btJournal string
	btDBPath  string
	btOutDir  string
	btOrgPath string
	btRunID   string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btFormat, "format", "f", "", "dataset format: json or csv (default by extension)")
	backtestCmd.Flags().StringVarP(&btJournal, "journal", "j", "", "journal type: none, csv or sqlite (overrides config)")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "SQLite journal path (overrides config)")
	backtestCmd.Flags().StringVarP(&btOutDir, "out", "o", "", "CSV journal directory (overrides config)")
	backtestCmd.Flags().StringVar(&btOrgPath, "org", "", "write an Org-mode report of the run to this file")
	backtestCmd.Flags().StringVar(&btRunID, "run-id", "", "run ID (default: new ULID)")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	dataset := cfg.Backtest.Dataset
	if len(args) == 1 {
		dataset = args[0]
	}
	if dataset == "" {
		return errors.New("no dataset: pass one as an argument or set backtest.dataset")
	}
	format := cfg.Backtest.Format
	if btFormat != "" {
		format = btFormat
	}

	jc := cfg.Journal
	if btJournal != "" {
		jc.Type = btJournal
	}
	if btDBPath != "" {
		jc.DBPath = btDBPath
	}
	if btOutDir != "" {
		jc.Dir = btOutDir
	}

	f, err := openFeed(dataset, format)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}

	j, err := openJournal(jc)
	if err != nil {
		f.Close()
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	log := telemetry.L()
	p := cfg.Params()
	r := backtest.NewRunner(p, cfg.Account, f, strategy.WithObserver(telemetry.NewLogObserver(log)))
	r.RunID = btRunID
	r.Dataset = dataset
	r.Log = log
	r.Journal = j

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("backtest starting", "dataset", dataset, "journal", jc.Type)
	res, runErr := r.Run(ctx)

	backtest.PrintResult(cmd.OutOrStdout(), res)
	if runErr != nil {
		return fmt.Errorf("backtest: %w", runErr)
	}
	if j != nil {
		telemetry.Infof("run %s journaled (%s)", res.RunID, jc.Type)
	}

	if btOrgPath != "" {
		run, err := backtest.RunRecord(res, p)
		if err != nil {
			return fmt.Errorf("org report: %w", err)
		}
		if err := journal.WriteRunOrgFile(btOrgPath, run, backtest.FillRecords(res)); err != nil {
			return fmt.Errorf("org report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s\n", btOrgPath)
	}
	return nil
}
