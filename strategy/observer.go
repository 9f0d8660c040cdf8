package strategy

import "github.com/rustyeddy/courtside/broker"

// Observer is notified at the engine's extension points. Calls happen while
// the engine holds its lock, so implementations must not call back into
// the engine.
type Observer interface {
	OnDecision(d Decision)
	OnOrder(o broker.OrderIntent, err error)
	OnStop(position int, runDiff float64)
	OnPrint(p broker.Print)
	OnReset()
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) OnDecision(Decision)               {}
func (NopObserver) OnOrder(broker.OrderIntent, error) {}
func (NopObserver) OnStop(int, float64)               {}
func (NopObserver) OnPrint(broker.Print)              {}
func (NopObserver) OnReset()                          {}
