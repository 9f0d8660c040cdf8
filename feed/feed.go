// Package feed loads and streams game events: recorded games from JSON or
// CSV files, in-memory slices for tests, and live websocket sessions.
package feed

import (
	"errors"

	"github.com/rustyeddy/courtside/game"
)

var ErrClosed = errors.New("feed: closed")

// Item is one step of a replay. MarketPrice, when set, is a book update
// delivered before Event.
type Item struct {
	Event       game.Event
	MarketPrice *float64
}

// Feed yields items in order. Implementations return (ok=false, err=nil)
// at the end of the data.
type Feed interface {
	Next() (it Item, ok bool, err error)
	Close() error
}

// SliceFeed replays a fixed list of items.
type SliceFeed struct {
	items  []Item
	pos    int
	closed bool
}

func NewSliceFeed(items []Item) *SliceFeed {
	return &SliceFeed{items: items}
}

// Events wraps bare events as a feed with no book updates.
func Events(evs ...game.Event) *SliceFeed {
	items := make([]Item, len(evs))
	for i, ev := range evs {
		items[i] = Item{Event: ev}
	}
	return NewSliceFeed(items)
}

func (f *SliceFeed) Next() (Item, bool, error) {
	if f.closed {
		return Item{}, false, ErrClosed
	}
	if f.pos >= len(f.items) {
		return Item{}, false, nil
	}
	it := f.items[f.pos]
	f.pos++
	return it, true, nil
}

func (f *SliceFeed) Close() error {
	f.closed = true
	return nil
}

// Len is the total number of items, consumed or not.
func (f *SliceFeed) Len() int { return len(f.items) }

// Collect drains a feed into a slice and closes it.
func Collect(f Feed) ([]Item, error) {
	defer f.Close()
	var out []Item
	for {
		it, ok, err := f.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, it)
	}
}
