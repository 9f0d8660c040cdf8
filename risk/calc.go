package risk

import "math"

const (
	// GapHorizon is the clock value at which the gap threshold is widest.
	GapHorizon = 2400.0
	// UrgencyWindow is the final stretch in which the threshold collapses.
	UrgencyWindow = 30.0

	maxShares = 1 << 53
)

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// floorShares converts a share count to an int, rounding toward -inf.
func floorShares(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	if x > maxShares {
		return maxShares
	}
	return int(math.Floor(x))
}

// GapThreshold is the minimum model-vs-market difference, in price points,
// needed to trade. It is wide early, narrow late, and drops sharply inside
// the urgency window.
func (p Policy) GapThreshold(timeRemaining float64) float64 {
	timeFactor := clamp(timeRemaining/GapHorizon, 0, 1)
	threshold := math.Max(p.MinGap, p.BaseGap*(1+timeFactor))
	if timeRemaining < UrgencyWindow {
		threshold = math.Max(p.MinGap*0.25, threshold*0.25)
	}
	return threshold
}

// TradeSize sizes an order from the edge between the model and the market.
// marketPrice is on the 0..100 scale. A non-positive price disables sizing.
func (p Policy) TradeSize(winProb, capital, marketPrice float64) int {
	if marketPrice <= 0 {
		return 0
	}
	marketProb := marketPrice / 100
	edge := math.Abs(winProb - marketProb)

	pricePerShare := marketPrice / 100
	maxByExposure := floorShares((capital * p.MaxExposurePct) / math.Max(1e-9, pricePerShare))

	scale := clamp(edge/0.5, 0, 1)
	shares := max(0, floorShares(float64(maxByExposure)*scale))
	if shares > 0 && shares < p.MinTradeSize {
		shares = p.MinTradeSize
	}
	return shares
}

// ExposureCap is how many more shares may be added in direction d without
// exceeding the exposure limit, given the current signed position.
func (p Policy) ExposureCap(capital, marketPrice float64, position int, d Direction) int {
	pricePer := math.Max(0.01, marketPrice/100)
	allowed := floorShares((capital * p.MaxExposurePct) / pricePer)
	if d == Long {
		return max(0, allowed-max(0, position))
	}
	return max(0, allowed-max(0, -position))
}

// OrderQuantity is min(TradeSize, ExposureCap).
func (p Policy) OrderQuantity(winProb, capital, marketPrice float64, position int, d Direction) int {
	return min(p.TradeSize(winProb, capital, marketPrice), p.ExposureCap(capital, marketPrice, position, d))
}
