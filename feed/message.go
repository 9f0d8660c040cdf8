package feed

import (
	"context"
	"fmt"

	"github.com/rustyeddy/courtside/broker"
	"github.com/rustyeddy/courtside/game"
)

// Message types on a live session stream.
const (
	MsgGameEvent = "game_event"
	MsgOrderbook = "orderbook"
	MsgTrade     = "trade"
	MsgAccount   = "account"
)

// Message is one frame of a live session. Event is set for game_event;
// the flat fields carry book, print and fill data.
type Message struct {
	Type  string  `json:"type"`
	Event *Record `json:"event,omitempty"`

	Instrument       string  `json:"instrument,omitempty"`
	Side             string  `json:"side,omitempty"`
	Quantity         float64 `json:"quantity,omitempty"`
	Price            float64 `json:"price,omitempty"`
	CapitalRemaining float64 `json:"capital_remaining,omitempty"`
}

// Handler receives dispatched live messages.
type Handler interface {
	HandleGameEvent(ctx context.Context, ev game.Event)
	HandleQuote(q broker.Quote)
	HandlePrint(p broker.Print)
	HandleAccount(u broker.AccountUpdate)
}

func optSide(s string) broker.Side {
	if s == "" {
		return ""
	}
	side, err := broker.ParseSide(s)
	if err != nil {
		return ""
	}
	return side
}

// Dispatch routes one message to h.
func Dispatch(ctx context.Context, m Message, h Handler) error {
	switch m.Type {
	case MsgGameEvent:
		if m.Event == nil {
			return fmt.Errorf("game_event message without event")
		}
		if m.Event.MarketPrice != nil {
			h.HandleQuote(broker.Quote{Price: *m.Event.MarketPrice})
		}
		h.HandleGameEvent(ctx, m.Event.Event())
	case MsgOrderbook:
		h.HandleQuote(broker.Quote{
			Instrument: m.Instrument,
			Side:       optSide(m.Side),
			Quantity:   m.Quantity,
			Price:      m.Price,
		})
	case MsgTrade:
		h.HandlePrint(broker.Print{
			Instrument: m.Instrument,
			Side:       optSide(m.Side),
			Quantity:   m.Quantity,
			Price:      m.Price,
		})
	case MsgAccount:
		side, err := broker.ParseSide(m.Side)
		if err != nil {
			return fmt.Errorf("account message: %w", err)
		}
		h.HandleAccount(broker.AccountUpdate{
			Instrument:       m.Instrument,
			Side:             side,
			Price:            m.Price,
			Quantity:         int(m.Quantity),
			CapitalRemaining: m.CapitalRemaining,
		})
	default:
		return fmt.Errorf("unknown message type %q", m.Type)
	}
	return nil
}

// Messages turns a replay into the frames a live stream would carry.
func Messages(items []Item) []Message {
	out := make([]Message, 0, len(items)*2)
	for _, it := range items {
		if it.MarketPrice != nil {
			out = append(out, Message{Type: MsgOrderbook, Price: *it.MarketPrice})
		}
		rec := RecordOf(it.Event)
		out = append(out, Message{Type: MsgGameEvent, Event: &rec})
	}
	return out
}
