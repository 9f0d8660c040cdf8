package id

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorMonotonicWithinMillisecond(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	g := NewGeneratorWith(func() time.Time { return at }, rand.New(rand.NewSource(1)))

	prev := g.New()
	for i := 0; i < 100; i++ {
		next := g.New()
		require.Len(t, next, 26)
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	g := NewGeneratorWith(func() time.Time { return at }, rand.New(rand.NewSource(7)))

	got, err := Time(g.New())
	require.NoError(t, err)
	assert.True(t, got.Equal(at))
}

func TestTimeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}

func TestPackageNewUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := New()
		assert.False(t, seen[s])
		seen[s] = true
	}
}
