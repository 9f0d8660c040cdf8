package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/courtside/telemetry"
	"github.com/rustyeddy/courtside/tuning"
)

var tuneCmd = &cobra.Command{
	Use:   "tune [dataset]",
	Short: "Grid-search engine parameters over a recorded game",
	Long: `Tune replays one recorded game once per combination of the parameter grid
in tune.grid (alpha, beta, exposure, base gap, recent window) and ranks the
results.

Example:
  courtside tune data/game_0042.json --sort sharpe --top 10 --csv tuning.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTune,
}

var (
	tuneFormat  string
	tuneSort    string
	tuneTop     int
	tuneWorkers int
	tuneCSV     string
)

func init() {
	rootCmd.AddCommand(tuneCmd)

	tuneCmd.Flags().StringVarP(&tuneFormat, "format", "f", "", "dataset format: json or csv (default by extension)")
	tuneCmd.Flags().StringVarP(&tuneSort, "sort", "s", "", "rank by pnl, sharpe, final_value or max_drawdown (overrides config)")
	tuneCmd.Flags().IntVarP(&tuneTop, "top", "n", 5, "number of results to print")
	tuneCmd.Flags().IntVarP(&tuneWorkers, "workers", "w", 0, "concurrent backtests (default from config, then GOMAXPROCS)")
	tuneCmd.Flags().StringVar(&tuneCSV, "csv", "", "write every trial to this CSV file")
}

func runTune(cmd *cobra.Command, args []string) error {
	dataset := cfg.Backtest.Dataset
	if len(args) == 1 {
		dataset = args[0]
	}
	if dataset == "" {
		return errors.New("no dataset: pass one as an argument or set backtest.dataset")
	}
	format := cfg.Backtest.Format
	if tuneFormat != "" {
		format = tuneFormat
	}

	items, err := loadItems(dataset, format)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	workers := cfg.Tune.Workers
	if tuneWorkers > 0 {
		workers = tuneWorkers
	}
	key := cfg.Tune.SortBy
	if tuneSort != "" {
		key = tuneSort
	}
	if key == "" {
		key = "pnl"
	}

	log := telemetry.L()
	s := tuning.Search{
		Base:    cfg.Params(),
		Account: cfg.Account,
		Items:   items,
		Workers: workers,
		Progress: func(done, total int, t tuning.Trial) {
			log.Debug("trial done", "done", done, "total", total, "combo", t.Combo.String(), "pnl", t.PnL)
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("tuning", "dataset", dataset, "events", len(items), "combos", len(cfg.Tune.Grid.Combos(s.Base)))
	trials, err := s.Run(ctx, cfg.Tune.Grid)
	if err != nil {
		return err
	}
	if err := tuning.SortBy(trials, key); err != nil {
		return err
	}

	if tuneCSV != "" {
		out, err := os.Create(tuneCSV)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		if err := tuning.WriteCSV(out, trials); err != nil {
			out.Close()
			return fmt.Errorf("write csv: %w", err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Top %d of %d by %s\n", min(tuneTop, len(trials)), len(trials), key)
	fmt.Fprintln(w, "--------------------------------------------------")
	for i, t := range trials {
		if i >= tuneTop {
			break
		}
		fmt.Fprintf(w, "%2d. %s\n    pnl=%.2f sharpe=%.3f max_dd=%.2f%% trades=%d\n",
			i+1, t.Combo, t.PnL, t.Sharpe, t.MaxDrawdown*100, t.NumTrades)
	}
	return nil
}
