package strategy

import (
	"context"
	"math"
	"sync"

	"github.com/rustyeddy/courtside/broker"
	"github.com/rustyeddy/courtside/game"
	"github.com/rustyeddy/courtside/model"
	"github.com/rustyeddy/courtside/risk"
)

// Engine turns game events into orders for one instrument. Each public
// method runs under a single lock, so game events, book updates and fill
// reports may arrive from different goroutines.
type Engine struct {
	mu sync.Mutex

	params    Params
	estimator model.Estimator
	sink      broker.OrderSink
	capital   CapitalSource
	obs       Observer

	state        *game.State
	position     int
	marketPrice  float64
	lastDecision float64
	hasDecision  bool

	reportedCapital float64
}

type Option func(*Engine)

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.obs = o
		}
	}
}

// WithCapital sizes orders against src instead of Params.Capital.
func WithCapital(src CapitalSource) Option {
	return func(e *Engine) {
		if src != nil {
			e.capital = src
		}
	}
}

func NewEngine(p Params, sink broker.OrderSink, opts ...Option) *Engine {
	e := &Engine{
		params: p,
		estimator: model.Estimator{
			Alpha:  p.Alpha,
			Beta:   p.Beta,
			Coeffs: p.Model,
		},
		sink:    sink,
		capital: FixedCapital(p.Capital),
		obs:     NopObserver{},
		state:   game.NewState(p.RecentWindow, p.GameLength),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resetLocked()
	return e
}

func (e *Engine) Params() Params { return e.params }

// OnGameEvent processes one feed event and emits at most one order.
func (e *Engine) OnGameEvent(ctx context.Context, ev game.Event) Decision {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := e.decideLocked(ctx, ev)
	d.Position = e.position

	// END_GAME always ends the game, whichever step stopped the decision.
	if ev.Type == game.EventEndGame {
		e.resetLocked()
		d.Reset = true
		e.obs.OnReset()
	}
	return d
}

func (e *Engine) decideLocked(ctx context.Context, ev game.Event) Decision {
	e.state.Apply(ev)

	d := Decision{
		Event:         ev,
		Action:        ActionNone,
		TimeRemaining: e.state.TimeRemaining,
		MarketPrice:   e.marketPrice,
	}

	if e.hasDecision && math.Abs(e.lastDecision-e.state.TimeRemaining) < e.params.CooldownSeconds {
		d.Action = ActionThrottled
		return d
	}
	e.lastDecision = e.state.TimeRemaining
	e.hasDecision = true

	if ev.Type.Ignorable() {
		d.Action = ActionIgnored
		return d
	}

	d.WinProb = e.estimator.Estimate(e.state)
	d.Gap = e.params.Risk.GapThreshold(e.state.TimeRemaining)
	d.RunDiff = e.state.RunDiff()
	d.ModelPrice = d.WinProb * 100
	d.Diff = d.ModelPrice - e.marketPrice

	if e.params.Risk.StopLossTriggered(e.position, d.RunDiff) {
		dir, qty := risk.Flatten(e.position)
		e.obs.OnStop(e.position, d.RunDiff)
		e.placeLocked(ctx, dir, qty, "stop-loss")
		e.position = 0
		d.Action = ActionStop
		d.Quantity = qty
		e.obs.OnDecision(d)
		return d
	}

	d.Risk = risk.Evaluate(e.params.Risk, risk.Intent{
		WinProb:       d.WinProb,
		MarketPrice:   e.marketPrice,
		TimeRemaining: e.state.TimeRemaining,
	}, risk.AccountSnapshot{
		Capital:  e.capital.Capital(),
		Position: e.position,
	})

	if d.Risk.Quantity > 0 {
		e.placeLocked(ctx, d.Risk.Direction, d.Risk.Quantity, "edge")
		e.position += int(d.Risk.Direction) * d.Risk.Quantity
		d.Quantity = d.Risk.Quantity
		if d.Risk.Direction == risk.Long {
			d.Action = ActionBuy
		} else {
			d.Action = ActionSell
		}
	}
	e.obs.OnDecision(d)
	return d
}

func (e *Engine) placeLocked(ctx context.Context, dir risk.Direction, qty int, reason string) {
	side := broker.Buy
	if dir == risk.Short {
		side = broker.Sell
	}
	o := broker.OrderIntent{
		Side:       side,
		Instrument: e.params.Instrument,
		Quantity:   qty,
		Reason:     reason,
	}
	var err error
	if e.sink != nil {
		err = e.sink.PlaceMarketOrder(ctx, o.Side, o.Instrument, o.Quantity)
	}
	e.obs.OnOrder(o, err)
}

// OnOrderbookUpdate records the latest market price. It never trades.
func (e *Engine) OnOrderbookUpdate(q broker.Quote) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.marketPrice = q.Price
}

// OnTradeUpdate is informational only.
func (e *Engine) OnTradeUpdate(p broker.Print) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.obs.OnPrint(p)
}

// OnAccountUpdate reconciles the optimistic position with a reported fill.
// CapitalRemaining is kept for inspection only.
func (e *Engine) OnAccountUpdate(u broker.AccountUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position += u.Side.Sign() * u.Quantity
	e.reportedCapital = u.CapitalRemaining
}

// Reset returns the engine to its start-of-game state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
	e.obs.OnReset()
}

func (e *Engine) resetLocked() {
	e.state.Reset()
	e.position = 0
	e.marketPrice = e.params.InitialMarketPrice
	e.lastDecision = 0
	e.hasDecision = false
}

func (e *Engine) Position() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

func (e *Engine) MarketPrice() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.marketPrice
}

// Snapshot is a point-in-time copy of the engine's mutable state.
type Snapshot struct {
	Game            game.Snapshot
	Position        int
	MarketPrice     float64
	LastDecision    *float64
	ReportedCapital float64
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Snapshot{
		Game:            e.state.Snapshot(),
		Position:        e.position,
		MarketPrice:     e.marketPrice,
		ReportedCapital: e.reportedCapital,
	}
	if e.hasDecision {
		v := e.lastDecision
		s.LastDecision = &v
	}
	return s
}
