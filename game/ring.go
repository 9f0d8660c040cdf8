package game

// Scoring is one entry of the recent-scoring window.
type Scoring struct {
	Side   Side
	Points int
}

// scoringRing is a fixed-capacity FIFO. Pushing onto a full ring evicts
// the oldest entry.
type scoringRing struct {
	buf   []Scoring
	start int
	n     int
}

func newScoringRing(capacity int) scoringRing {
	if capacity < 1 {
		capacity = 1
	}
	return scoringRing{buf: make([]Scoring, capacity)}
}

func (r *scoringRing) push(s Scoring) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = s
		r.n++
		return
	}
	r.buf[r.start] = s
	r.start = (r.start + 1) % len(r.buf)
}

func (r *scoringRing) len() int { return r.n }
func (r *scoringRing) cap() int { return len(r.buf) }

func (r *scoringRing) reset() {
	r.start, r.n = 0, 0
}

// each visits entries oldest first.
func (r *scoringRing) each(fn func(Scoring)) {
	for i := 0; i < r.n; i++ {
		fn(r.buf[(r.start+i)%len(r.buf)])
	}
}
