package backtest

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/courtside/broker"
	"github.com/rustyeddy/courtside/feed"
	"github.com/rustyeddy/courtside/game"
	"github.com/rustyeddy/courtside/journal"
	"github.com/rustyeddy/courtside/sim"
	"github.com/rustyeddy/courtside/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(p float64) *float64 { return &p }

func item(typ game.EventType, side game.Side, home, away int, shot game.ShotType, t float64) feed.Item {
	return feed.Item{Event: game.Event{
		Type:          typ,
		Side:          side,
		HomeScore:     home,
		AwayScore:     away,
		ShotType:      shot,
		TimeRemaining: game.Seconds(t),
	}}
}

func newRunner(items ...feed.Item) *Runner {
	r := NewRunner(strategy.DefaultParams(), sim.DefaultConfig(), feed.NewSliceFeed(items))
	r.RunID = "TEST"
	return r
}

func TestRunnerValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	full := newRunner()

	_, err := (&Runner{Feed: full.Feed, Account: full.Account}).Run(ctx)
	assert.ErrorIs(t, err, ErrNoEngine)

	_, err = (&Runner{Engine: full.Engine, Account: full.Account}).Run(ctx)
	assert.ErrorIs(t, err, ErrNoFeed)

	_, err = (&Runner{Engine: full.Engine, Feed: full.Feed}).Run(ctx)
	assert.ErrorIs(t, err, ErrNoAccount)
	assert.Equal(t, "backtest: Account is required", err.Error())
}

func TestFlatGameLeavesEquityFlat(t *testing.T) {
	t.Parallel()

	r := newRunner(
		item(game.EventStartPeriod, game.SideNone, 0, 0, "", 2400),
		item(game.EventRebound, game.Home, 0, 0, "", 2350),
		item(game.EventFoul, game.Away, 0, 0, "", 2300),
		item(game.EventTimeout, game.SideNone, 0, 0, "", 2200),
		item(game.EventTurnover, game.Home, 0, 0, "", 2100),
	)
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []float64{100_000, 100_000, 100_000, 100_000, 100_000}, res.EquityCurve)
	assert.Equal(t, 100_000.0, res.FinalValue)
	assert.Equal(t, 0.0, res.PnL)
	assert.Equal(t, 0.0, res.MaxDrawdown)
	assert.Equal(t, 0.0, res.Sharpe)
	assert.Equal(t, 0, res.NumTrades)
	assert.Equal(t, 5, res.NumEvents)
	assert.Equal(t, 3, res.Actions[strategy.ActionNone])
	assert.Equal(t, 2, res.Actions[strategy.ActionIgnored])
}

func TestEmptyFeed(t *testing.T) {
	t.Parallel()

	res, err := newRunner().Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100_000.0, res.FinalValue)
	assert.Equal(t, 0.0, res.PnL)
	assert.Empty(t, res.EquityCurve)
}

func TestFirstBasketFillsInSimulator(t *testing.T) {
	t.Parallel()

	r := newRunner(item(game.EventScore, game.Home, 2, 0, game.ShotTwoPoint, 2390))
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	f := res.Trades[0]
	assert.Equal(t, broker.Buy, f.Side)
	assert.Equal(t, 8395, f.Quantity)
	assert.Equal(t, 50.0, f.Price)
	assert.Equal(t, 0, f.Seq)
	assert.Equal(t, 2390.0, f.TimeRemaining)

	assert.InDelta(t, 95_802.5, r.Account.Capital(), 1e-9)
	assert.Equal(t, 8395, r.Account.Position())
	assert.Equal(t, r.Account.Position(), r.Engine.Position())
	assert.InDelta(t, 100_000, res.FinalValue, 1e-9)
}

func TestTrailingStopReportedToEngine(t *testing.T) {
	t.Parallel()

	drop := item(game.EventTimeout, game.SideNone, 2, 0, "", 2300)
	drop.MarketPrice = price(40)

	r := newRunner(item(game.EventScore, game.Home, 2, 0, game.ShotTwoPoint, 2390), drop)
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Trades, 2)
	stop := res.Trades[1]
	assert.Equal(t, sim.ReasonTrailingStop, stop.Reason)
	assert.Equal(t, broker.Sell, stop.Side)
	assert.Equal(t, 8395, stop.Quantity)
	assert.Equal(t, 40.0, stop.Price)
	assert.Equal(t, 1, stop.Seq)

	assert.Equal(t, 0, r.Account.Position())
	assert.Equal(t, 0, r.Engine.Position())
	assert.InDelta(t, 95_802.5+3_358, res.FinalValue, 1e-9)
	assert.InDelta(t, -839.5, res.PnL, 1e-9)
	assert.InDelta(t, 839.5/100_000, res.MaxDrawdown, 1e-12)
}

func TestEndGameClosesSimulatedPosition(t *testing.T) {
	t.Parallel()

	end := item(game.EventEndGame, game.SideNone, 2, 0, "", 0)
	end.MarketPrice = price(55)

	r := newRunner(item(game.EventScore, game.Home, 2, 0, game.ShotTwoPoint, 2390), end)
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	last := res.Trades[len(res.Trades)-1]
	assert.Equal(t, ReasonEndOfGame, last.Reason)
	assert.Equal(t, broker.Sell, last.Side)
	assert.Equal(t, 55.0, last.Price)
	assert.Equal(t, 0, last.Position)

	assert.Equal(t, 0, r.Account.Position())
	assert.Equal(t, 0, r.Engine.Position())
	assert.Equal(t, 50.0, r.Engine.MarketPrice())
	assert.InDelta(t, r.Account.Capital(), res.FinalValue, 1e-9)
	// long 8395 from 50 to 55, plus whatever the final event added at 55
	assert.InDelta(t, 8395*0.05, res.PnL, 1e-6)
}

type failingFeed struct {
	items []feed.Item
	err   error
}

func (f *failingFeed) Next() (feed.Item, bool, error) {
	if len(f.items) == 0 {
		return feed.Item{}, false, f.err
	}
	it := f.items[0]
	f.items = f.items[1:]
	return it, true, nil
}

func (f *failingFeed) Close() error { return nil }

func TestFeedErrorKeepsPartialResult(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk gone")
	r := newRunner()
	r.Feed = &failingFeed{
		items: []feed.Item{item(game.EventFoul, game.Home, 0, 0, "", 2000)},
		err:   boom,
	}

	res, err := r.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, res.EquityCurve, 1)
	assert.Equal(t, 1, res.NumEvents)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newRunner(item(game.EventFoul, game.Home, 0, 0, "", 2000)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.EquityCurve)
	assert.Equal(t, "TEST", res.RunID)
}

func TestRunRecordsToJournal(t *testing.T) {
	t.Parallel()

	j, err := journal.NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer j.Close()

	drop := item(game.EventTimeout, game.SideNone, 2, 0, "", 2300)
	drop.MarketPrice = price(40)
	r := newRunner(item(game.EventScore, game.Home, 2, 0, game.ShotTwoPoint, 2390), drop)
	r.RunID = ""
	r.Dataset = "fixture"
	r.Journal = j

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)

	run, err := j.GetRun(res.RunID)
	require.NoError(t, err)
	assert.Equal(t, "fixture", run.Dataset)
	assert.Equal(t, "TEAM_A", run.Instrument)
	assert.InDelta(t, res.PnL, run.PnL, 1e-9)
	assert.Equal(t, 2, run.NumTrades)
	assert.Contains(t, run.Params, `"max_exposure_pct":0.2`)

	fills, err := j.ListFillsByRunID(res.RunID)
	require.NoError(t, err)
	require.Len(t, fills, 2)
	assert.Equal(t, "trailing-stop", fills[1].Reason)

	eq, err := j.ListEquityByRunID(res.RunID)
	require.NoError(t, err)
	assert.Len(t, eq, 2)
}
