package broker

import (
	"context"
	"fmt"
	"strings"
)

// Side is the direction of an order or print.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "B":
		return Buy, nil
	case "SELL", "S":
		return Sell, nil
	}
	return "", fmt.Errorf("unknown side %q", s)
}

// Sign is +1 for Buy and -1 for Sell.
func (s Side) Sign() int {
	if s == Sell {
		return -1
	}
	return 1
}

func (s Side) Opposite() Side {
	if s == Sell {
		return Buy
	}
	return Sell
}

// OrderSink accepts market orders. The engine ignores the returned error
// beyond reporting it; a live venue adapter and the backtest account are
// both sinks.
//
// PlaceMarketOrder runs while the engine holds its lock. A sink must not
// call back into the engine before returning; fills are reported through
// OnAccountUpdate from another goroutine or after the call completes.
type OrderSink interface {
	PlaceMarketOrder(ctx context.Context, side Side, instrument string, quantity int) error
}

// OrderIntent is an order the engine has decided to send.
type OrderIntent struct {
	Side       Side
	Instrument string
	Quantity   int
	Reason     string
}

// Quote is an order book update. Price is on the 0..100 scale.
type Quote struct {
	Instrument string
	Side       Side
	Quantity   float64
	Price      float64
}

// Prob is the market-implied probability of the quote.
func (q Quote) Prob() float64 { return q.Price / 100 }

// Print is a trade seen on the venue, ours or not.
type Print struct {
	Instrument string
	Side       Side
	Quantity   float64
	Price      float64
}

// AccountUpdate reports one of our orders being filled.
type AccountUpdate struct {
	Instrument       string
	Side             Side
	Price            float64
	Quantity         int
	CapitalRemaining float64
}
