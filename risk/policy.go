package risk

// Policy holds the risk limits of one engine instance. It is immutable once
// the engine is built.
type Policy struct {
	MaxExposurePct float64 `json:"max_exposure_pct" yaml:"max_exposure_pct"` // fraction of capital, (0,1]
	BaseGap        float64 `json:"base_gap" yaml:"base_gap"`                 // price points
	MinGap         float64 `json:"min_gap" yaml:"min_gap"`                   // price points, <= BaseGap
	MinTradeSize   int     `json:"min_trade_size" yaml:"min_trade_size"`     // shares
	ShockThreshold float64 `json:"stop_loss_shock_threshold" yaml:"stop_loss_shock_threshold"`
}

func DefaultPolicy() Policy {
	return Policy{
		MaxExposurePct: 0.20,
		BaseGap:        1.0,
		MinGap:         0.5,
		MinTradeSize:   10,
		ShockThreshold: 0.4,
	}
}

// Direction is the sign of an order: +1 buys, -1 sells.
type Direction int8

const (
	Long  Direction = +1
	Short Direction = -1
)

func (d Direction) String() string {
	if d == Short {
		return "SELL"
	}
	return "BUY"
}
