// Package model turns a game state into a home win probability.
//
// The estimate is a heuristic blend of three signals: the score
// differential weighted up as the clock runs down, the scoring-run
// differential over the recent window, and relative shooting efficiency.
package model

import (
	"math"

	"github.com/rustyeddy/courtside/game"
)

const (
	MinProb = 0.01
	MaxProb = 0.99
)

// Coefficients are the tunable constants of the blend. DefaultCoefficients
// reproduces the reference behaviour exactly.
type Coefficients struct {
	ScoreSlope       float64 `json:"score_slope" yaml:"score_slope"`             // per point of lead
	DecaySeconds     float64 `json:"decay_seconds" yaml:"decay_seconds"`         // time decay constant
	MomentumSlope    float64 `json:"momentum_slope" yaml:"momentum_slope"`       // per unit of run diff
	EfficiencySlope  float64 `json:"efficiency_slope" yaml:"efficiency_slope"`   // per unit of FG% gap
	EfficiencyWeight float64 `json:"efficiency_weight" yaml:"efficiency_weight"` // blend weight of the efficiency term
}

func DefaultCoefficients() Coefficients {
	return Coefficients{
		ScoreSlope:       0.04,
		DecaySeconds:     600,
		MomentumSlope:    0.2,
		EfficiencySlope:  0.1,
		EfficiencyWeight: 0.5,
	}
}

// Estimator blends the signals with weights Alpha (score/time) and Beta
// (momentum).
type Estimator struct {
	Alpha  float64
	Beta   float64
	Coeffs Coefficients
}

func NewEstimator(alpha, beta float64) Estimator {
	return Estimator{Alpha: alpha, Beta: beta, Coeffs: DefaultCoefficients()}
}

// Breakdown exposes the intermediate terms of one estimate.
type Breakdown struct {
	ScoreDiff  float64
	TimeDecay  float64
	FromScore  float64
	RunDiff    float64
	Momentum   float64
	Efficiency float64
	Weighted   float64
	Prob       float64
}

// Estimate returns the home win probability clamped to [MinProb, MaxProb].
func (e Estimator) Estimate(s *game.State) float64 {
	return e.Explain(s).Prob
}

func (e Estimator) Explain(s *game.State) Breakdown {
	c := e.Coeffs
	var b Breakdown

	b.ScoreDiff = float64(s.ScoreDiff())
	decay := c.DecaySeconds
	if decay <= 0 {
		decay = 1
	}
	b.TimeDecay = math.Exp(-s.TimeRemaining / decay)
	b.FromScore = 0.5 + c.ScoreSlope*b.ScoreDiff*(1+b.TimeDecay)

	b.RunDiff = s.RunDiff()
	b.Momentum = 0.5 + c.MomentumSlope*b.RunDiff

	homeEff, awayEff := s.Efficiency()
	b.Efficiency = 0.5 + c.EfficiencySlope*(homeEff-awayEff)

	den := e.Alpha + e.Beta + c.EfficiencyWeight
	if den <= 0 {
		b.Weighted = 0.5
	} else {
		b.Weighted = (e.Alpha*b.FromScore + e.Beta*b.Momentum + c.EfficiencyWeight*b.Efficiency) / den
	}
	b.Prob = Clamp(b.Weighted)
	return b
}

// Clamp bounds p to [MinProb, MaxProb]. NaN maps to 0.5.
func Clamp(p float64) float64 {
	if math.IsNaN(p) {
		return 0.5
	}
	return math.Min(math.Max(p, MinProb), MaxProb)
}
