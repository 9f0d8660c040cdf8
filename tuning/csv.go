package tuning

import (
	"encoding/csv"
	"io"
	"strconv"
)

var Header = []string{"alpha", "beta", "exposure", "base_gap", "recent_events", "final_value", "pnl", "max_drawdown", "sharpe", "num_trades"}

func ff(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }

// WriteCSV writes one row per trial under Header.
func WriteCSV(w io.Writer, trials []Trial) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, t := range trials {
		if err := cw.Write([]string{
			ff(t.Alpha),
			ff(t.Beta),
			ff(t.MaxExposurePct),
			ff(t.BaseGap),
			strconv.Itoa(t.RecentWindow),
			ff(t.FinalValue),
			ff(t.PnL),
			ff(t.MaxDrawdown),
			ff(t.Sharpe),
			strconv.Itoa(t.NumTrades),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
