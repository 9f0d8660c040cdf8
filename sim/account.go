package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/rustyeddy/courtside/broker"
	"github.com/rustyeddy/courtside/pkg/id"
)

// Config is the starting state of a simulated account.
type Config struct {
	Capital         float64 `json:"capital" yaml:"capital"`
	TrailingStopPct float64 `json:"trailing_stop_pct" yaml:"trailing_stop_pct"`
	InitialPrice    float64 `json:"initial_market_price" yaml:"initial_market_price"`
}

func DefaultConfig() Config {
	return Config{
		Capital:         100_000,
		TrailingStopPct: 0.10,
		InitialPrice:    50,
	}
}

// Account is a single-instrument simulated book. It fills every market order
// immediately at the current mark with no slippage. Capital may go negative;
// nothing here floors it.
//
// Account implements broker.OrderSink and strategy.CapitalSource.
type Account struct {
	mu  sync.Mutex
	cfg Config

	capital      float64
	position     int
	price        float64
	maxFavorable float64

	seq           int
	timeRemaining float64

	fills []Fill
	newID func() string
}

type Option func(*Account)

// WithIDs replaces the fill ID generator.
func WithIDs(fn func() string) Option {
	return func(a *Account) {
		if fn != nil {
			a.newID = fn
		}
	}
}

func NewAccount(cfg Config, opts ...Option) *Account {
	a := &Account{
		cfg:     cfg,
		capital: cfg.Capital,
		price:   cfg.InitialPrice,
		newID:   id.New,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PlaceMarketOrder fills side/quantity at the current mark. Non-positive
// quantities are dropped without a fill.
func (a *Account) PlaceMarketOrder(ctx context.Context, side broker.Side, instrument string, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	if side != broker.Buy && side != broker.Sell {
		return fmt.Errorf("sim: unknown side %q", side)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fillLocked(side, quantity, "")
	return nil
}

func (a *Account) fillLocked(side broker.Side, qty int, reason string) Fill {
	notional := a.price * float64(qty) / 100
	if side == broker.Buy {
		a.capital -= notional
		a.position += qty
	} else {
		a.capital += notional
		a.position -= qty
	}

	if a.position > 0 {
		a.maxFavorable = max(a.maxFavorable, a.price)
	} else {
		a.maxFavorable = a.price
	}

	f := Fill{
		ID:            a.newID(),
		Seq:           a.seq,
		TimeRemaining: a.timeRemaining,
		Side:          side,
		Quantity:      qty,
		Price:         a.price,
		Capital:       a.capital,
		Position:      a.position,
		Reason:        reason,
	}
	a.fills = append(a.fills, f)
	return f
}

// Mark moves the price used for fills and valuation.
func (a *Account) Mark(price float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.price = price
}

// Stamp tags subsequent fills with the feed position and game clock.
func (a *Account) Stamp(seq int, timeRemaining float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq = seq
	a.timeRemaining = timeRemaining
}

// Equity is capital plus the position marked at the current price.
func (a *Account) Equity() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return markToMarket(a.capital, a.position, a.price)
}

func (a *Account) Capital() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.capital
}

func (a *Account) Position() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.position
}

func (a *Account) Price() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.price
}

func (a *Account) MaxFavorable() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.maxFavorable
}

// Fills returns a copy of the trade log in execution order.
func (a *Account) Fills() []Fill {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Fill(nil), a.fills...)
}

// Flatten closes any open position at the current mark.
func (a *Account) Flatten(reason string) (Fill, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case a.position > 0:
		return a.fillLocked(broker.Sell, a.position, reason), true
	case a.position < 0:
		return a.fillLocked(broker.Buy, -a.position, reason), true
	}
	return Fill{}, false
}
