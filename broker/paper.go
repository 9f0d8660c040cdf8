package broker

import (
	"context"
	"log/slog"
	"sync"
)

// PaperSink accepts every order and only records it. It backs live sessions
// that have no venue connectivity.
type PaperSink struct {
	log *slog.Logger

	mu     sync.Mutex
	orders []OrderIntent
}

func NewPaperSink(log *slog.Logger) *PaperSink {
	if log == nil {
		log = slog.Default()
	}
	return &PaperSink{log: log}
}

func (p *PaperSink) PlaceMarketOrder(ctx context.Context, side Side, instrument string, quantity int) error {
	p.mu.Lock()
	p.orders = append(p.orders, OrderIntent{Side: side, Instrument: instrument, Quantity: quantity})
	p.mu.Unlock()

	p.log.InfoContext(ctx, "paper order",
		slog.String("side", string(side)),
		slog.String("instrument", instrument),
		slog.Int("quantity", quantity))
	return nil
}

// Orders returns a copy of everything placed so far.
func (p *PaperSink) Orders() []OrderIntent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]OrderIntent(nil), p.orders...)
}
