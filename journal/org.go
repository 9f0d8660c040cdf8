package journal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"
)

type orgView struct {
	Run    RunRecord
	Fills  []FillRecord
	Buys   int
	Sells  int
	Forced int
}

var runOrgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"short": shortID,
}

var runOrgTmpl = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// WriteRunOrg renders a run and its fills as an Org-mode entry.
func WriteRunOrg(w io.Writer, run RunRecord, fills []FillRecord) error {
	v := orgView{Run: run, Fills: fills}
	for _, f := range fills {
		switch {
		case f.Reason != "":
			v.Forced++
		case f.Side == "BUY":
			v.Buys++
		default:
			v.Sells++
		}
	}
	return runOrgTmpl.Execute(w, v)
}

// WriteRunOrgFile writes the report to path.
func WriteRunOrgFile(path string, run RunRecord, fills []FillRecord) error {
	var buf bytes.Buffer
	if err := WriteRunOrg(&buf, run, fills); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ExportRunOrg loads a run and its fills and returns the Org entry.
func (j *SQLite) ExportRunOrg(runID string) (string, error) {
	run, err := j.GetRun(runID)
	if err != nil {
		return "", err
	}
	fills, err := j.ListFillsByRunID(runID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := WriteRunOrg(&b, run, fills); err != nil {
		return "", err
	}
	return b.String(), nil
}

const RunOrgTemplate = `* BACKTEST: {{.Run.Instrument}} {{if .Run.Dataset}}{{.Run.Dataset}}{{else}}(dataset?){{end}}
:PROPERTIES:
:RUN_ID:      {{.Run.RunID}}
:INSTRUMENT:  {{.Run.Instrument}}
:DATASET:     {{if .Run.Dataset}}{{.Run.Dataset}}{{else}}(dataset?){{end}}
:START_CAP:   {{printf "%.2f" .Run.StartCapital}}
:FINAL_VALUE: {{printf "%.2f" .Run.FinalValue}}
:PNL:         {{printf "%.2f" .Run.PnL}}
:RETURN_PCT:  {{printf "%.2f" .Run.ReturnPct}}
:MAX_DD_PCT:  {{printf "%.2f" (mul100 .Run.MaxDrawdown)}}
:SHARPE:      {{printf "%.3f" .Run.Sharpe}}
:TRADES:      {{.Run.NumTrades}}
:EVENTS:      {{.Run.NumEvents}}
:CREATED:     [{{(orTime .Run.Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Parameters
#+begin_src json
{{.Run.Params}}
#+end_src

** Performance Summary
- PnL:          *{{printf "%.2f" .Run.PnL}}*
- Return:       *{{printf "%.2f" .Run.ReturnPct}}%*
- Max Drawdown: *{{printf "%.2f" (mul100 .Run.MaxDrawdown)}}%*
- Sharpe:       *{{printf "%.3f" .Run.Sharpe}}*

** Fills
| Buys | Sells | Forced |
|------+-------+--------|
| {{.Buys}} | {{.Sells}} | {{.Forced}} |
{{- if .Fills}}

| Seq | Clock | Side | Qty | Price | Position | Reason | ID |
|-----+-------+------+-----+-------+----------+--------+----|
{{- range .Fills}}
| {{.Seq}} | {{printf "%.1f" .TimeRemaining}} | {{.Side}} | {{.Quantity}} | {{printf "%.2f" .Price}} | {{.Position}} | {{.Reason}} | {{short .FillID}} |
{{- end}}
{{- end}}
{{- if .Run.Notes}}

** Observations
{{- range .Run.Notes}}
- {{.}}
{{- end}}
{{- end}}
`

// FormatFillOrg renders one fill as an Org heading with a PROPERTIES drawer.
func FormatFillOrg(f FillRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Fill: %s %d @ %.2f (%s)\n", f.Side, f.Quantity, f.Price, shortID(f.FillID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":FILL_ID: %s\n", f.FillID)
	fmt.Fprintf(&b, ":RUN_ID: %s\n", f.RunID)
	fmt.Fprintf(&b, ":SEQ: %d\n", f.Seq)
	fmt.Fprintf(&b, ":CLOCK: %.1f\n", f.TimeRemaining)
	fmt.Fprintf(&b, ":CAPITAL: %.2f\n", f.Capital)
	fmt.Fprintf(&b, ":POSITION: %d\n", f.Position)
	if f.Reason != "" {
		fmt.Fprintf(&b, ":REASON: %s\n", f.Reason)
	}
	b.WriteString(":END:\n")
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
