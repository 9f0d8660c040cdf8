package game

// DefaultGameLength is regulation time in seconds (4 x 10 minutes).
const DefaultGameLength = 2400.0

// State is the running game picture the estimator reads. It is mutated only
// through Apply and Reset and is not safe for concurrent use.
type State struct {
	HomeScore     int
	AwayScore     int
	TimeRemaining float64

	HomeMade     int
	HomeAttempts int
	AwayMade     int
	AwayAttempts int

	gameLength float64
	recent     scoringRing
}

// NewState returns a fresh state with a recent-scoring window of the given
// capacity. A non-positive gameLength falls back to DefaultGameLength.
func NewState(window int, gameLength float64) *State {
	if gameLength <= 0 {
		gameLength = DefaultGameLength
	}
	s := &State{
		gameLength: gameLength,
		recent:     newScoringRing(window),
	}
	s.Reset()
	return s
}

// Reset restores every field to its start-of-game value.
func (s *State) Reset() {
	s.HomeScore = 0
	s.AwayScore = 0
	s.TimeRemaining = s.gameLength
	s.HomeMade = 0
	s.HomeAttempts = 0
	s.AwayMade = 0
	s.AwayAttempts = 0
	s.recent.reset()
}

// Apply folds one event into the state. Scores are overwritten from the
// feed; time only when present. SCORE and MISSED events update the shooting
// counters and the scoring window exactly once.
func (s *State) Apply(e Event) {
	s.HomeScore = e.HomeScore
	s.AwayScore = e.AwayScore
	if e.TimeRemaining != nil {
		s.TimeRemaining = *e.TimeRemaining
	}

	switch e.Type {
	case EventScore:
		pts := e.ShotType.Points()
		if pts <= 0 || !e.Side.Valid() {
			return
		}
		s.recent.push(Scoring{Side: e.Side, Points: pts})
		if e.Side == Home {
			s.HomeMade++
			s.HomeAttempts++
		} else {
			s.AwayMade++
			s.AwayAttempts++
		}
	case EventMissed:
		switch e.Side {
		case Home:
			s.HomeAttempts++
		case Away:
			s.AwayAttempts++
		}
	}
}

func (s *State) GameLength() float64 { return s.gameLength }

// ScoreDiff is home minus away.
func (s *State) ScoreDiff() int { return s.HomeScore - s.AwayScore }

// RecentLen is the number of scoring events currently in the window.
func (s *State) RecentLen() int { return s.recent.len() }

// Window is the configured capacity of the scoring window.
func (s *State) Window() int { return s.recent.cap() }

// Recent returns the window contents, oldest first.
func (s *State) Recent() []Scoring {
	out := make([]Scoring, 0, s.recent.len())
	s.recent.each(func(sc Scoring) { out = append(out, sc) })
	return out
}

// RunDiff is the net home-minus-away points over the window, normalized by
// three points per event. Positive favors home.
func (s *State) RunDiff() float64 {
	n := s.recent.len()
	if n == 0 {
		return 0
	}
	net := 0
	s.recent.each(func(sc Scoring) {
		if sc.Side == Home {
			net += sc.Points
		} else {
			net -= sc.Points
		}
	})
	norm := float64(n) * 3
	if norm < 1 {
		norm = 1
	}
	return float64(net) / norm
}

// Efficiency returns made/attempts per side, guarding empty attempt counts.
func (s *State) Efficiency() (home, away float64) {
	home = float64(s.HomeMade) / float64(max(1, s.HomeAttempts))
	away = float64(s.AwayMade) / float64(max(1, s.AwayAttempts))
	return home, away
}

// Snapshot is a copy of State safe to hand to observers.
type Snapshot struct {
	HomeScore     int
	AwayScore     int
	TimeRemaining float64
	HomeMade      int
	HomeAttempts  int
	AwayMade      int
	AwayAttempts  int
	Recent        []Scoring
	RunDiff       float64
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		HomeScore:     s.HomeScore,
		AwayScore:     s.AwayScore,
		TimeRemaining: s.TimeRemaining,
		HomeMade:      s.HomeMade,
		HomeAttempts:  s.HomeAttempts,
		AwayMade:      s.AwayMade,
		AwayAttempts:  s.AwayAttempts,
		Recent:        s.Recent(),
		RunDiff:       s.RunDiff(),
	}
}
