// Package journal persists backtest runs: a summary row per run, the fills
// it made and its equity curve, all keyed by run ID.
package journal

import "time"

// RunRecord is the summary of one backtest run.
type RunRecord struct {
	RunID      string
	Created    time.Time
	Dataset    string
	Instrument string
	Params     string // JSON of the engine parameters

	StartCapital float64
	FinalValue   float64
	PnL          float64
	MaxDrawdown  float64 // fraction of peak
	Sharpe       float64
	NumTrades    int
	NumEvents    int

	Notes []string
}

// ReturnPct is PnL as a percentage of starting capital.
func (r RunRecord) ReturnPct() float64 {
	if r.StartCapital == 0 {
		return 0
	}
	return r.PnL / r.StartCapital * 100
}

// FillRecord is one simulated execution.
type FillRecord struct {
	RunID         string
	FillID        string
	Seq           int
	TimeRemaining float64
	Side          string
	Quantity      int
	Price         float64
	Capital       float64 // after the fill
	Position      int     // after the fill
	Reason        string
}

// EquityPoint is the account value after one processed event.
type EquityPoint struct {
	RunID  string
	Seq    int
	Equity float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordFill(FillRecord) error
	RecordEquity(EquityPoint) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRun(RunRecord) error      { return nil }
func (Nop) RecordFill(FillRecord) error    { return nil }
func (Nop) RecordEquity(EquityPoint) error { return nil }
func (Nop) Close() error                   { return nil }
