package live

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rustyeddy/courtside/broker"
	"github.com/rustyeddy/courtside/feed"
	"github.com/rustyeddy/courtside/game"
	"github.com/rustyeddy/courtside/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource dispatches a fixed list of messages, then optionally blocks
// until ctx ends.
type sliceSource struct {
	msgs  []feed.Message
	block bool
	err   error
}

func (s sliceSource) Run(ctx context.Context, h feed.Handler) error {
	for _, m := range s.msgs {
		if err := feed.Dispatch(ctx, m, h); err != nil {
			return err
		}
	}
	if s.block {
		<-ctx.Done()
	}
	return s.err
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func homeBasket() []feed.Item {
	price := 50.0
	return []feed.Item{
		{Event: game.Event{Type: game.EventStartPeriod, TimeRemaining: game.Seconds(2400)}},
		{Event: game.Event{Type: game.EventScore, Side: game.Home, HomeScore: 2, ShotType: game.ShotTwoPoint, TimeRemaining: game.Seconds(2390)}, MarketPrice: &price},
	}
}

func newSession(src Source, buf *syncBuffer) (*Session, *broker.PaperSink) {
	log := slog.New(slog.NewTextHandler(buf, nil))
	sink := broker.NewPaperSink(log)
	return &Session{
		Engine: strategy.NewEngine(strategy.DefaultParams(), sink),
		Source: src,
		Log:    log,
	}, sink
}

func TestSessionTradesFromMessages(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	s, sink := newSession(sliceSource{msgs: feed.Messages(homeBasket())}, &buf)

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 2, s.Events())
	assert.Equal(t, 1, s.Trades())
	assert.Equal(t, []broker.OrderIntent{{Side: broker.Buy, Instrument: "TEAM_A", Quantity: 8395}}, sink.Orders())
	assert.Equal(t, 8395, s.Engine.Position())
	assert.Contains(t, buf.String(), "session ended")
	assert.Contains(t, buf.String(), "position=8395")
}

func TestSessionAccountAndPrints(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	msgs := []feed.Message{
		{Type: feed.MsgTrade, Instrument: "TEAM_A", Side: "BUY", Quantity: 5, Price: 48},
		{Type: feed.MsgAccount, Instrument: "TEAM_A", Side: "SELL", Quantity: 30, Price: 48, CapitalRemaining: 90_000},
	}
	s, sink := newSession(sliceSource{msgs: msgs}, &buf)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, -30, s.Engine.Position())
	assert.Empty(t, sink.Orders())
	assert.Zero(t, s.Events())
}

func TestSessionStatusTicker(t *testing.T) {
	t.Parallel()

	var buf syncBuffer
	s, _ := newSession(sliceSource{block: true}, &buf)
	s.StatusInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "msg=status")
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("session did not stop")
	}
}

func TestSessionSourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	var buf syncBuffer
	s, _ := newSession(sliceSource{err: boom}, &buf)
	s.StatusInterval = time.Hour

	assert.ErrorIs(t, s.Run(context.Background()), boom)
}

func TestSessionRequiresParts(t *testing.T) {
	t.Parallel()

	assert.Error(t, (&Session{Source: sliceSource{}}).Run(context.Background()))
	assert.ErrorIs(t, (&Session{Engine: strategy.NewEngine(strategy.DefaultParams(), broker.NewPaperSink(nil))}).Run(context.Background()), ErrNoSource)
}

func TestSessionOverWebsocket(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(&feed.ReplayServer{
		Messages: feed.Messages(homeBasket()),
		Log:      slog.New(slog.DiscardHandler),
	})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws, err := feed.DialWS(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	var buf syncBuffer
	s, sink := newSession(ws, &buf)
	require.NoError(t, s.Run(ctx))

	assert.Equal(t, 2, s.Events())
	require.Len(t, sink.Orders(), 1)
	assert.Equal(t, 8395, sink.Orders()[0].Quantity)
}
