package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `run_id, created, dataset, instrument, params, start_capital, final_value,
	pnl, max_drawdown, sharpe, num_trades, num_events, notes`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var r RunRecord
	var notes string
	err := s.Scan(
		&r.RunID,
		&r.Created,
		&r.Dataset,
		&r.Instrument,
		&r.Params,
		&r.StartCapital,
		&r.FinalValue,
		&r.PnL,
		&r.MaxDrawdown,
		&r.Sharpe,
		&r.NumTrades,
		&r.NumEvents,
		&notes,
	)
	r.Notes = splitNotes(notes)
	return r, err
}

// GetRun returns a single run summary by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return r, nil
}

// ListRuns returns the most recent runs first. limit <= 0 means all.
func (j *SQLite) ListRuns(limit int) ([]RunRecord, error) {
	q := `SELECT ` + runColumns + ` FROM runs ORDER BY created DESC, run_id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListFillsByRunID returns a run's fills in execution order.
func (j *SQLite) ListFillsByRunID(runID string) ([]FillRecord, error) {
	rows, err := j.db.Query(`
		SELECT fill_id, run_id, seq, time_remaining, side, quantity, price, capital, position, reason
		FROM fills
		WHERE run_id = ?
		ORDER BY seq ASC, fill_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FillRecord
	for rows.Next() {
		var f FillRecord
		if err := rows.Scan(
			&f.FillID,
			&f.RunID,
			&f.Seq,
			&f.TimeRemaining,
			&f.Side,
			&f.Quantity,
			&f.Price,
			&f.Capital,
			&f.Position,
			&f.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquityByRunID returns a run's equity curve in event order.
func (j *SQLite) ListEquityByRunID(runID string) ([]EquityPoint, error) {
	rows, err := j.db.Query(`
		SELECT run_id, seq, equity
		FROM equity
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityPoint
	for rows.Next() {
		var e EquityPoint
		if err := rows.Scan(&e.RunID, &e.Seq, &e.Equity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
