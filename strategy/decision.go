package strategy

import (
	"github.com/rustyeddy/courtside/game"
	"github.com/rustyeddy/courtside/risk"
)

// Action is what the engine did with one event.
type Action string

const (
	ActionNone      Action = "NONE"
	ActionBuy       Action = "BUY"
	ActionSell      Action = "SELL"
	ActionStop      Action = "STOP"
	ActionThrottled Action = "THROTTLED"
	ActionIgnored   Action = "IGNORED"
)

// Decision records the evaluation of one game event. Price fields are only
// populated when the event reached the pricing step.
type Decision struct {
	Event         game.Event
	Action        Action
	TimeRemaining float64

	WinProb     float64
	ModelPrice  float64
	MarketPrice float64
	Diff        float64
	Gap         float64
	RunDiff     float64

	Quantity int
	Position int // position after the decision, before any reset
	Risk     risk.Decision

	Reset bool // state was reset after this event
}

// Traded reports whether the decision sent an order.
func (d Decision) Traded() bool {
	switch d.Action {
	case ActionBuy, ActionSell, ActionStop:
		return d.Quantity > 0
	}
	return false
}
