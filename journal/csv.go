package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var (
	RunsHeader   = []string{"run_id", "created", "dataset", "instrument", "params", "start_capital", "final_value", "pnl", "max_drawdown", "sharpe", "num_trades", "num_events", "notes"}
	FillsHeader  = []string{"run_id", "fill_id", "seq", "time_remaining", "side", "quantity", "price", "capital", "position", "reason"}
	EquityHeader = []string{"run_id", "seq", "equity"}
)

// CSVJournal writes runs.csv, fills.csv and equity.csv into one directory.
type CSVJournal struct {
	runs, fills, equity *csv.Writer
	files               []*os.File
}

func NewCSV(dir string) (*CSVJournal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	j := &CSVJournal{}
	open := func(name string, header []string) (*csv.Writer, error) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		j.files = append(j.files, f)
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			return nil, err
		}
		w.Flush()
		return w, w.Error()
	}

	var err error
	if j.runs, err = open("runs.csv", RunsHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	if j.fills, err = open("fills.csv", FillsHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	if j.equity, err = open("equity.csv", EquityHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	return j, nil
}

func write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	return write(j.runs, []string{
		r.RunID,
		r.Created.UTC().Format(time.RFC3339),
		r.Dataset,
		r.Instrument,
		r.Params,
		f(r.StartCapital),
		f(r.FinalValue),
		f(r.PnL),
		f(r.MaxDrawdown),
		f(r.Sharpe),
		strconv.Itoa(r.NumTrades),
		strconv.Itoa(r.NumEvents),
		strings.Join(r.Notes, "; "),
	})
}

func (j *CSVJournal) RecordFill(x FillRecord) error {
	return write(j.fills, []string{
		x.RunID,
		x.FillID,
		strconv.Itoa(x.Seq),
		f(x.TimeRemaining),
		x.Side,
		strconv.Itoa(x.Quantity),
		f(x.Price),
		f(x.Capital),
		strconv.Itoa(x.Position),
		x.Reason,
	})
}

func (j *CSVJournal) RecordEquity(e EquityPoint) error {
	return write(j.equity, []string{e.RunID, strconv.Itoa(e.Seq), f(e.Equity)})
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.runs, j.fills, j.equity} {
		w.Flush()
		if err := w.Error(); err != nil {
			j.closeFiles()
			return err
		}
	}
	return j.closeFiles()
}

func (j *CSVJournal) closeFiles() error {
	var first error
	for _, fh := range j.files {
		if err := fh.Close(); err != nil && first == nil {
			first = err
		}
	}
	j.files = nil
	return first
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
