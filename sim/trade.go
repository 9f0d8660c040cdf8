package sim

import "github.com/rustyeddy/courtside/broker"

// Fill is one executed simulated order.
type Fill struct {
	ID            string
	Seq           int     // index of the feed event being processed
	TimeRemaining float64 // game clock at fill time
	Side          broker.Side
	Quantity      int
	Price         float64 // 0..100

	// account state after the fill
	Capital  float64
	Position int

	Reason string
}

// Notional is the cash moved by the fill.
func (f Fill) Notional() float64 {
	return f.Price * float64(f.Quantity) / 100
}
