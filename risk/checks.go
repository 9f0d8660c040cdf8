package risk

import "fmt"

type Violation struct {
	Code string
	Msg  string
}

// Decision is the outcome of evaluating a candidate order.
type Decision struct {
	Allowed    bool
	Violations []Violation

	Direction Direction
	Edge      float64 // model price minus market price, points
	Gap       float64
	Size      int // edge-scaled size before the exposure cap
	Cap       int // remaining exposure in Direction
	Quantity  int
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Intent is a candidate trade: the model's view against the current book.
type Intent struct {
	WinProb       float64
	MarketPrice   float64 // 0..100
	TimeRemaining float64
}

// AccountSnapshot is the engine's view of its own book.
type AccountSnapshot struct {
	Capital  float64
	Position int
}

// Evaluate decides whether the model/market difference clears the gap
// threshold and, if so, how many shares the policy allows.
func Evaluate(p Policy, in Intent, acct AccountSnapshot) Decision {
	d := Decision{
		Allowed: true,
		Edge:    in.WinProb*100 - in.MarketPrice,
		Gap:     p.GapThreshold(in.TimeRemaining),
	}

	switch {
	case d.Edge > d.Gap:
		d.Direction = Long
	case d.Edge < -d.Gap:
		d.Direction = Short
	default:
		d.add("INSIDE_GAP", fmt.Sprintf("edge %.2f within gap %.2f", d.Edge, d.Gap))
		return d
	}

	if in.MarketPrice <= 0 {
		d.add("NO_MARKET", fmt.Sprintf("market price %.2f is not tradable", in.MarketPrice))
		return d
	}

	d.Size = p.TradeSize(in.WinProb, acct.Capital, in.MarketPrice)
	d.Cap = p.ExposureCap(acct.Capital, in.MarketPrice, acct.Position, d.Direction)
	d.Quantity = min(d.Size, d.Cap)

	if d.Size == 0 {
		d.add("NO_SIZE", "edge-scaled size is zero")
	}
	if d.Cap == 0 {
		d.add("EXPOSURE_CAP", fmt.Sprintf("position %d already at exposure limit", acct.Position))
	}
	return d
}
