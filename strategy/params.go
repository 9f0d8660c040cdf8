package strategy

import (
	"github.com/rustyeddy/courtside/game"
	"github.com/rustyeddy/courtside/model"
	"github.com/rustyeddy/courtside/risk"
)

// Params configures one engine. Every field is resolved before the engine
// is built; the engine never falls back to defaults on its own.
type Params struct {
	Instrument         string  `json:"instrument" yaml:"instrument"`
	Alpha              float64 `json:"alpha" yaml:"alpha"`
	Beta               float64 `json:"beta" yaml:"beta"`
	RecentWindow       int     `json:"recent_events" yaml:"recent_events"`
	CooldownSeconds    float64 `json:"cooldown_seconds" yaml:"cooldown_seconds"`
	GameLength         float64 `json:"game_length" yaml:"game_length"`
	InitialMarketPrice float64 `json:"initial_market_price" yaml:"initial_market_price"`
	Capital            float64 `json:"capital" yaml:"capital"` // sizing capital when no CapitalSource is given

	Risk  risk.Policy        `json:"risk" yaml:"risk"`
	Model model.Coefficients `json:"model" yaml:"model"`
}

func DefaultParams() Params {
	return Params{
		Instrument:         "TEAM_A",
		Alpha:              0.5,
		Beta:               0.5,
		RecentWindow:       8,
		CooldownSeconds:    3,
		GameLength:         game.DefaultGameLength,
		InitialMarketPrice: 50,
		Capital:            100_000,
		Risk:               risk.DefaultPolicy(),
		Model:              model.DefaultCoefficients(),
	}
}

// CapitalSource supplies the capital used for sizing at decision time.
type CapitalSource interface {
	Capital() float64
}

// FixedCapital sizes against a constant amount.
type FixedCapital float64

func (c FixedCapital) Capital() float64 { return float64(c) }
