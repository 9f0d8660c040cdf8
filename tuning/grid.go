// Package tuning searches engine parameters by replaying the same game
// under every combination of a parameter grid.
package tuning

import (
	"fmt"

	"github.com/rustyeddy/courtside/strategy"
)

// Grid lists candidate values per parameter. An empty list keeps the base
// parameter's value.
type Grid struct {
	Alphas    []float64 `json:"alphas" yaml:"alphas"`
	Betas     []float64 `json:"betas" yaml:"betas"`
	Exposures []float64 `json:"exposures" yaml:"exposures"`
	BaseGaps  []float64 `json:"base_gaps" yaml:"base_gaps"`
	Windows   []int     `json:"windows" yaml:"windows"`
}

func DefaultGrid() Grid {
	return Grid{
		Alphas:    []float64{0.2, 0.5, 1.0},
		Betas:     []float64{0.2, 0.5, 1.0},
		Exposures: []float64{0.1, 0.2, 0.3},
		BaseGaps:  []float64{0.5, 1.0, 2.0},
		Windows:   []int{5, 8, 12},
	}
}

// Combo is one point of a grid.
type Combo struct {
	Alpha          float64
	Beta           float64
	MaxExposurePct float64
	BaseGap        float64
	RecentWindow   int
}

func (c Combo) String() string {
	return fmt.Sprintf("alpha=%g beta=%g exp=%g base_gap=%g window=%d",
		c.Alpha, c.Beta, c.MaxExposurePct, c.BaseGap, c.RecentWindow)
}

// Apply returns p with the combo's values substituted.
func (c Combo) Apply(p strategy.Params) strategy.Params {
	p.Alpha = c.Alpha
	p.Beta = c.Beta
	p.Risk.MaxExposurePct = c.MaxExposurePct
	p.Risk.BaseGap = c.BaseGap
	p.RecentWindow = c.RecentWindow
	return p
}

func orF(v []float64, def float64) []float64 {
	if len(v) == 0 {
		return []float64{def}
	}
	return v
}

// Combos is the cartesian product of g, filling empty axes from base. The
// last axis varies fastest.
func (g Grid) Combos(base strategy.Params) []Combo {
	alphas := orF(g.Alphas, base.Alpha)
	betas := orF(g.Betas, base.Beta)
	exps := orF(g.Exposures, base.Risk.MaxExposurePct)
	gaps := orF(g.BaseGaps, base.Risk.BaseGap)
	wins := g.Windows
	if len(wins) == 0 {
		wins = []int{base.RecentWindow}
	}

	out := make([]Combo, 0, len(alphas)*len(betas)*len(exps)*len(gaps)*len(wins))
	for _, a := range alphas {
		for _, b := range betas {
			for _, e := range exps {
				for _, gp := range gaps {
					for _, w := range wins {
						out = append(out, Combo{
							Alpha:          a,
							Beta:           b,
							MaxExposurePct: e,
							BaseGap:        gp,
							RecentWindow:   w,
						})
					}
				}
			}
		}
	}
	return out
}
