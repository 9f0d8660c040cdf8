package backtest

import (
	"fmt"
	"io"

	"github.com/rustyeddy/courtside/sim"
	"github.com/rustyeddy/courtside/strategy"
)

// Result summarizes one replay.
type Result struct {
	RunID   string
	Dataset string

	StartCapital float64
	FinalValue   float64
	PnL          float64
	MaxDrawdown  float64
	Sharpe       float64

	NumTrades   int
	NumEvents   int
	Trades      []sim.Fill
	EquityCurve []float64 // one point per processed event

	Actions map[strategy.Action]int
}

func summarize(r *Result) {
	r.FinalValue = r.StartCapital
	if n := len(r.EquityCurve); n > 0 {
		r.FinalValue = r.EquityCurve[n-1]
	}
	r.PnL = r.FinalValue - r.StartCapital
	r.MaxDrawdown = MaxDrawdown(r.EquityCurve)
	r.Sharpe = Sharpe(Returns(r.EquityCurve))
	r.NumTrades = len(r.Trades)
	r.NumEvents = len(r.EquityCurve)
}

func PrintResult(w io.Writer, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	if r.RunID != "" {
		fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	}
	if r.Dataset != "" {
		fmt.Fprintf(w, "Dataset:       %s\n", r.Dataset)
	}
	fmt.Fprintf(w, "Events:        %d\n", r.NumEvents)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Capital: %.2f\n", r.StartCapital)
	fmt.Fprintf(w, "Final Value:   %.2f\n", r.FinalValue)
	fmt.Fprintf(w, "PnL:           %.2f\n", r.PnL)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", r.MaxDrawdown*100)
	fmt.Fprintf(w, "Sharpe:        %.2f\n", r.Sharpe)
	fmt.Fprintf(w, "Trades:        %d\n", r.NumTrades)

	if len(r.Actions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Decisions")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, a := range []strategy.Action{
			strategy.ActionBuy, strategy.ActionSell, strategy.ActionStop,
			strategy.ActionNone, strategy.ActionThrottled, strategy.ActionIgnored,
		} {
			if n := r.Actions[a]; n > 0 {
				fmt.Fprintf(w, "%-14s %d\n", string(a)+":", n)
			}
		}
	}
	fmt.Fprintln(w)
}
