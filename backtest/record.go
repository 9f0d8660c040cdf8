package backtest

import (
	"encoding/json"
	"time"

	"github.com/rustyeddy/courtside/journal"
	"github.com/rustyeddy/courtside/pkg/id"
	"github.com/rustyeddy/courtside/strategy"
)

// RunRecord summarizes a result for the journal. The creation time comes
// from the run ID when it is a ULID.
func RunRecord(res Result, p strategy.Params) (journal.RunRecord, error) {
	params, err := json.Marshal(p)
	if err != nil {
		return journal.RunRecord{}, err
	}

	created := time.Now().UTC()
	if t, err := id.Time(res.RunID); err == nil {
		created = t
	}

	return journal.RunRecord{
		RunID:        res.RunID,
		Created:      created,
		Dataset:      res.Dataset,
		Instrument:   p.Instrument,
		Params:       string(params),
		StartCapital: res.StartCapital,
		FinalValue:   res.FinalValue,
		PnL:          res.PnL,
		MaxDrawdown:  res.MaxDrawdown,
		Sharpe:       res.Sharpe,
		NumTrades:    res.NumTrades,
		NumEvents:    res.NumEvents,
	}, nil
}

func FillRecords(res Result) []journal.FillRecord {
	out := make([]journal.FillRecord, 0, len(res.Trades))
	for _, f := range res.Trades {
		out = append(out, journal.FillRecord{
			RunID:         res.RunID,
			FillID:        f.ID,
			Seq:           f.Seq,
			TimeRemaining: f.TimeRemaining,
			Side:          string(f.Side),
			Quantity:      f.Quantity,
			Price:         f.Price,
			Capital:       f.Capital,
			Position:      f.Position,
			Reason:        f.Reason,
		})
	}
	return out
}

// Record writes a result's summary, fills and equity curve to j.
func Record(j journal.Journal, res Result, p strategy.Params) error {
	run, err := RunRecord(res, p)
	if err != nil {
		return err
	}
	if err := j.RecordRun(run); err != nil {
		return err
	}

	for _, f := range FillRecords(res) {
		if err := j.RecordFill(f); err != nil {
			return err
		}
	}

	for i, eq := range res.EquityCurve {
		if err := j.RecordEquity(journal.EquityPoint{RunID: res.RunID, Seq: i, Equity: eq}); err != nil {
			return err
		}
	}
	return nil
}
