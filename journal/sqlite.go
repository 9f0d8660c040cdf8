package journal

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// notes are stored one per line
func joinNotes(n []string) string { return strings.Join(n, "\n") }

func splitNotes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// RecordRun stores r, replacing any earlier run with the same ID along with
// that run's fills and equity curve.
func (j *SQLite) RecordRun(r RunRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM fills WHERE run_id = ?`, r.RunID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM equity WHERE run_id = ?`, r.RunID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO runs
		(run_id, created, dataset, instrument, params, start_capital, final_value,
		 pnl, max_drawdown, sharpe, num_trades, num_events, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created.UTC(), r.Dataset, r.Instrument, r.Params, r.StartCapital, r.FinalValue,
		r.PnL, r.MaxDrawdown, r.Sharpe, r.NumTrades, r.NumEvents, joinNotes(r.Notes),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (j *SQLite) RecordFill(f FillRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO fills
		(fill_id, run_id, seq, time_remaining, side, quantity, price, capital, position, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.FillID, f.RunID, f.Seq, f.TimeRemaining, f.Side, f.Quantity,
		f.Price, f.Capital, f.Position, f.Reason,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquityPoint) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO equity (run_id, seq, equity) VALUES (?, ?, ?)`,
		e.RunID, e.Seq, e.Equity,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
