package sim

import (
	"context"

	"github.com/rustyeddy/courtside/broker"
	"github.com/rustyeddy/courtside/risk"
)

const ReasonTrailingStop = "trailing-stop"

// CheckTrailingStop sells the whole long position when the price has fallen
// more than the trailing percentage below the best price seen since entry.
// It reports the fill so the caller can tell the engine.
func (a *Account) CheckTrailingStop(ctx context.Context) (Fill, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !risk.TrailingStopHit(a.position, a.price, a.maxFavorable, a.cfg.TrailingStopPct) {
		return Fill{}, false
	}
	f := a.fillLocked(broker.Sell, a.position, ReasonTrailingStop)
	a.maxFavorable = a.price
	return f, true
}
