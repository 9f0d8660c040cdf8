package backtest

import "math"

// MaxDrawdown is the largest fall from a running peak, as a fraction of
// that peak. Points where the peak is not positive are skipped.
func MaxDrawdown(equity []float64) float64 {
	peak := math.Inf(-1)
	maxDD := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// Returns are the differences between consecutive equity points.
func Returns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}
	out := make([]float64, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		out[i-1] = equity[i] - equity[i-1]
	}
	return out
}

// Sharpe is mean/stdev of returns using the sample standard deviation. It
// is 0 with fewer than two returns or no variance.
func Sharpe(returns []float64) float64 {
	n := len(returns)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(n)

	var ss float64
	for _, r := range returns {
		d := r - mean
		ss += d * d
	}
	stdev := math.Sqrt(ss / float64(n-1))
	if stdev == 0 {
		return 0
	}
	return mean / stdev
}
