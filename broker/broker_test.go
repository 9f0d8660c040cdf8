package broker

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"BUY", Buy, false},
		{" sell ", Sell, false},
		{"b", Buy, false},
		{"hold", "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSide(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSideSignAndOpposite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Buy.Sign())
	assert.Equal(t, -1, Sell.Sign())
	assert.Equal(t, Sell, Buy.Opposite())
	assert.Equal(t, Buy, Sell.Opposite())
}

func TestQuoteProb(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.55, Quote{Price: 55}.Prob(), 1e-12)
}

func TestPaperSinkRecords(t *testing.T) {
	t.Parallel()

	p := NewPaperSink(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, p.PlaceMarketOrder(context.Background(), Buy, "TEAM_A", 20))
	require.NoError(t, p.PlaceMarketOrder(context.Background(), Sell, "TEAM_A", 5))

	assert.Equal(t, []OrderIntent{
		{Side: Buy, Instrument: "TEAM_A", Quantity: 20},
		{Side: Sell, Instrument: "TEAM_A", Quantity: 5},
	}, p.Orders())
}
