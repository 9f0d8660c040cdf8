package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVFeed reads event rows from a CSV file whose header names the record
// fields (event_type, home_away, ..., time_seconds, optional market_price).
// Columns may appear in any order; empty cells are null. Empty rows are
// skipped.
type CSVFeed struct {
	c   io.Closer
	r   *csv.Reader
	col map[string]int
	row int
}

func NewCSVFeed(r io.Reader) (*CSVFeed, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv feed: missing header")
	}
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["event_type"]; !ok {
		return nil, fmt.Errorf("csv feed: header has no event_type column")
	}

	f := &CSVFeed{r: cr, col: col, row: 1}
	if c, ok := r.(io.Closer); ok {
		f.c = c
	}
	return f, nil
}

// LoadCSV opens path as a CSVFeed. The caller closes it.
func LoadCSV(path string) (*CSVFeed, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	f, err := NewCSVFeed(fh)
	if err != nil {
		fh.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (f *CSVFeed) Close() error {
	if f.c != nil {
		return f.c.Close()
	}
	return nil
}

func (f *CSVFeed) Next() (Item, bool, error) {
	for {
		row, err := f.r.Read()
		if err == io.EOF {
			return Item{}, false, nil
		}
		if err != nil {
			return Item{}, false, err
		}
		f.row++
		if blank(row) {
			continue
		}

		rec, err := f.parse(row)
		if err != nil {
			return Item{}, false, fmt.Errorf("csv feed row %d: %w", f.row, err)
		}
		return rec.Item(), true, nil
	}
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (f *CSVFeed) cell(row []string, name string) string {
	i, ok := f.col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (f *CSVFeed) text(row []string, name string) *string {
	v := f.cell(row, name)
	if v == "" {
		return nil
	}
	return &v
}

func (f *CSVFeed) number(row []string, name string) (*float64, error) {
	v := f.cell(row, name)
	if v == "" {
		return nil, nil
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("bad %s %q: %w", name, v, err)
	}
	return &x, nil
}

func (f *CSVFeed) parse(row []string) (Record, error) {
	rec := Record{
		EventType:             f.cell(row, "event_type"),
		HomeAway:              f.text(row, "home_away"),
		PlayerName:            f.text(row, "player_name"),
		SubstitutedPlayerName: f.text(row, "substituted_player_name"),
		ShotType:              f.text(row, "shot_type"),
		AssistPlayer:          f.text(row, "assist_player"),
		ReboundType:           f.text(row, "rebound_type"),
	}

	nums := []struct {
		name string
		dst  **float64
	}{
		{"coordinate_x", &rec.CoordinateX},
		{"coordinate_y", &rec.CoordinateY},
		{"time_seconds", &rec.TimeSeconds},
		{"market_price", &rec.MarketPrice},
	}
	for _, n := range nums {
		v, err := f.number(row, n.name)
		if err != nil {
			return Record{}, err
		}
		*n.dst = v
	}

	for _, s := range []struct {
		name string
		dst  *float64
	}{
		{"home_score", &rec.HomeScore},
		{"away_score", &rec.AwayScore},
	} {
		v, err := f.number(row, s.name)
		if err != nil {
			return Record{}, err
		}
		if v != nil {
			*s.dst = *v
		}
	}
	return rec, nil
}
