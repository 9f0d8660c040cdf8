package backtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		equity []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"flat", []float64{100, 100, 100}, 0},
		{"rising", []float64{100, 110, 130}, 0},
		{"single trough", []float64{100, 120, 60}, 0.5},
		// the later, higher peak sets the deepest fall: (150-60)/150
		{"running peak", []float64{100, 120, 90, 150, 60}, 0.6},
		{"non-positive peak ignored", []float64{-5, -10, -20}, 0},
		{"peak turns positive", []float64{0, 10, 5}, 0.5},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, MaxDrawdown(tt.equity), 1e-12)
		})
	}
}

func TestReturns(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Returns([]float64{5}))
	assert.Equal(t, []float64{20, -30, 60}, Returns([]float64{100, 120, 90, 150}))
}

func TestSharpe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Sharpe(nil))
	assert.Equal(t, 0.0, Sharpe([]float64{3}))
	assert.Equal(t, 0.0, Sharpe([]float64{2, 2, 2}))
	assert.InDelta(t, 2/math.Sqrt(2), Sharpe([]float64{1, 3}), 1e-12)
	// mean 1, sample stdev 2
	assert.InDelta(t, 0.5, Sharpe([]float64{-1, 1, 3}), 1e-12)
}
