package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out monotonic ULIDs. Runs and fills are keyed by these, so
// IDs sort in creation order in the journal.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy io.Reader
}

// NewGenerator returns a Generator on the wall clock with entropy seeded from
// crypto/rand.
func NewGenerator() *Generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewGeneratorWith(time.Now, rand.New(rand.NewSource(seed)))
}

// NewGeneratorWith builds a Generator from an explicit clock and entropy
// source. Tests use it to get reproducible IDs.
func NewGeneratorWith(now func() time.Time, entropy io.Reader) *Generator {
	return &Generator{
		now:     now,
		entropy: ulid.Monotonic(entropy, 0),
	}
}

func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.entropy)
	if err != nil {
		// only on clock regression past the monotonic window or entropy failure
		panic(err)
	}
	return id.String()
}

// Time extracts the creation time encoded in a ULID string.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}

var std = NewGenerator()

// New returns a ULID from the package generator.
func New() string { return std.New() }
