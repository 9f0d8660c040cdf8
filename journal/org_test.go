package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRunOrg(t *testing.T) {
	t.Parallel()

	run := sampleRun("01JABCDEFGHJKMNPQRSTVWXYZ0", time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC))
	fills := []FillRecord{
		{FillID: "01JFILL00000000000000000001", Seq: 1, TimeRemaining: 2390, Side: "BUY", Quantity: 8395, Price: 50, Position: 8395},
		{FillID: "01JFILL00000000000000000002", Seq: 7, TimeRemaining: 2100, Side: "SELL", Quantity: 8395, Price: 44, Reason: "trailing-stop"},
		{FillID: "F3", Seq: 9, TimeRemaining: 2000, Side: "SELL", Quantity: 20, Price: 60},
	}

	var b strings.Builder
	require.NoError(t, WriteRunOrg(&b, run, fills))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "* BACKTEST: TEAM_A game.json\n"))
	assert.Contains(t, out, ":RUN_ID:      01JABCDEFGHJKMNPQRSTVWXYZ0")
	assert.Contains(t, out, ":PNL:         1250.00")
	assert.Contains(t, out, ":RETURN_PCT:  1.25")
	assert.Contains(t, out, ":MAX_DD_PCT:  2.00")
	assert.Contains(t, out, ":CREATED:     [2025-03-15 Sat 10:30]")
	assert.Contains(t, out, `{"Alpha":0.5}`)
	assert.Contains(t, out, "| 1 | 1 | 1 |")
	assert.Contains(t, out, "| 7 | 2100.0 | SELL | 8395 | 44.00 | 0 | trailing-stop | 01JFILL0 |")
	assert.Contains(t, out, "| 9 | 2000.0 | SELL | 20 | 60.00 | 0 |  | F3 |")
	assert.Contains(t, out, "** Observations\n- late run\n- thin book")
}

func TestWriteRunOrgNoFills(t *testing.T) {
	t.Parallel()

	run := sampleRun("R", time.Time{})
	run.Dataset = ""
	run.Notes = nil

	var b strings.Builder
	require.NoError(t, WriteRunOrg(&b, run, nil))
	out := b.String()
	assert.Contains(t, out, "* BACKTEST: TEAM_A (dataset?)")
	assert.Contains(t, out, "| 0 | 0 | 0 |")
	assert.NotContains(t, out, "| Seq |")
	assert.NotContains(t, out, "Observations")
}

func TestExportRunOrgFromSQLite(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	require.NoError(t, j.RecordRun(sampleRun("R9", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, j.RecordFill(FillRecord{RunID: "R9", FillID: "F1", Seq: 1, Side: "BUY", Quantity: 10, Price: 50}))

	out, err := j.ExportRunOrg("R9")
	require.NoError(t, err)
	assert.Contains(t, out, ":RUN_ID:      R9")
	assert.Contains(t, out, "| 1 | 0 | 0 |")

	_, err = j.ExportRunOrg("missing")
	assert.Error(t, err)
}

func TestWriteRunOrgFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.org")
	require.NoError(t, WriteRunOrgFile(path, sampleRun("R", time.Now()), nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "** Performance Summary")
}

func TestFormatFillOrg(t *testing.T) {
	t.Parallel()

	out := FormatFillOrg(FillRecord{RunID: "R", FillID: "abcdefghijk", Seq: 3, TimeRemaining: 100, Side: "SELL", Quantity: 7, Price: 42.5, Capital: 10, Position: -7})
	assert.Contains(t, out, "** Fill: SELL 7 @ 42.50 (abcdefgh)")
	assert.Contains(t, out, ":POSITION: -7")
	assert.NotContains(t, out, ":REASON:")
}
