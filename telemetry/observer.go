package telemetry

import (
	"context"
	"log/slog"

	"github.com/rustyeddy/courtside/broker"
	"github.com/rustyeddy/courtside/strategy"
)

// LogObserver reports engine activity through slog. Decisions that did not
// trade are logged at debug.
type LogObserver struct {
	Log *slog.Logger
}

func NewLogObserver(l *slog.Logger) *LogObserver {
	if l == nil {
		l = L()
	}
	return &LogObserver{Log: l}
}

func (o *LogObserver) OnDecision(d strategy.Decision) {
	level := slog.LevelDebug
	if d.Traded() {
		level = slog.LevelInfo
	}
	o.Log.Log(context.Background(), level, "decision",
		slog.String("action", string(d.Action)),
		slog.String("event", string(d.Event.Type)),
		slog.Float64("t", d.TimeRemaining),
		slog.Float64("win_prob", d.WinProb),
		slog.Float64("model", d.ModelPrice),
		slog.Float64("market", d.MarketPrice),
		slog.Float64("gap", d.Gap),
		slog.Int("qty", d.Quantity),
	)
}

func (o *LogObserver) OnOrder(oi broker.OrderIntent, err error) {
	if err != nil {
		o.Log.Error("order rejected",
			slog.String("side", string(oi.Side)),
			slog.String("instrument", oi.Instrument),
			slog.Int("qty", oi.Quantity),
			slog.String("reason", oi.Reason),
			slog.Any("err", err),
		)
		return
	}
	o.Log.Info("order",
		slog.String("side", string(oi.Side)),
		slog.String("instrument", oi.Instrument),
		slog.Int("qty", oi.Quantity),
		slog.String("reason", oi.Reason),
	)
}

func (o *LogObserver) OnStop(position int, runDiff float64) {
	o.Log.Warn("stop-loss", slog.Int("position", position), slog.Float64("run_diff", runDiff))
}

func (o *LogObserver) OnPrint(p broker.Print) {
	o.Log.Debug("print",
		slog.String("instrument", p.Instrument),
		slog.String("side", string(p.Side)),
		slog.Float64("qty", p.Quantity),
		slog.Float64("price", p.Price),
	)
}

func (o *LogObserver) OnReset() {
	o.Log.Info("game over, state reset")
}
