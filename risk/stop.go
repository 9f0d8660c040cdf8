package risk

// StopLossTriggered reports whether a scoring run has gone far enough
// against the open position to close it.
func (p Policy) StopLossTriggered(position int, runDiff float64) bool {
	switch {
	case position > 0:
		return runDiff < -p.ShockThreshold
	case position < 0:
		return runDiff > p.ShockThreshold
	}
	return false
}

// Flatten returns the order that closes position entirely.
func Flatten(position int) (Direction, int) {
	if position < 0 {
		return Long, -position
	}
	return Short, position
}

// TrailingStopHit reports whether a long position has retreated more than
// pct from its best price.
func TrailingStopHit(position int, price, maxFavorable, pct float64) bool {
	if position <= 0 || maxFavorable <= 0 {
		return false
	}
	return price < maxFavorable*(1-pct)
}
