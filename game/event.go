package game

import "strings"

// EventType is the category of a play-by-play event.
type EventType string

const (
	EventScore        EventType = "SCORE"
	EventMissed       EventType = "MISSED"
	EventRebound      EventType = "REBOUND"
	EventTurnover     EventType = "TURNOVER"
	EventFoul         EventType = "FOUL"
	EventSteal        EventType = "STEAL"
	EventBlock        EventType = "BLOCK"
	EventJumpBall     EventType = "JUMP_BALL"
	EventSubstitution EventType = "SUBSTITUTION"
	EventTimeout      EventType = "TIMEOUT"
	EventStartPeriod  EventType = "START_PERIOD"
	EventEndPeriod    EventType = "END_PERIOD"
	EventEndGame      EventType = "END_GAME"
	EventNothing      EventType = "NOTHING"
	EventUnknown      EventType = "UNKNOWN"
)

// ParseEventType normalizes a feed value. Anything empty maps to UNKNOWN;
// unrecognized values are kept verbatim so they can be inspected.
func ParseEventType(s string) EventType {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return EventUnknown
	}
	return EventType(s)
}

// Ignorable reports whether the event never leads to a trading decision.
// Unrecognized types are treated as UNKNOWN.
func (t EventType) Ignorable() bool {
	switch t {
	case EventNothing, EventStartPeriod, EventEndPeriod, EventSubstitution, EventUnknown, EventTimeout:
		return true
	case EventScore, EventMissed, EventRebound, EventTurnover, EventFoul,
		EventSteal, EventBlock, EventJumpBall, EventEndGame:
		return false
	}
	return true
}

// Side identifies the team an event is attributed to.
type Side string

const (
	SideNone Side = ""
	Home     Side = "home"
	Away     Side = "away"
)

func ParseSide(s string) Side {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return Home
	case "away":
		return Away
	}
	return SideNone
}

func (s Side) Valid() bool { return s == Home || s == Away }

// ShotType is the feed's shot classification.
type ShotType string

const (
	ShotFreeThrow  ShotType = "FREE_THROW"
	ShotTwoPoint   ShotType = "TWO_POINT"
	ShotLayup      ShotType = "LAYUP"
	ShotDunk       ShotType = "DUNK"
	ShotThreePoint ShotType = "THREE_POINT"
)

// Points maps a made shot to its value. Unknown shot types score 0.
func (s ShotType) Points() int {
	switch s {
	case ShotFreeThrow:
		return 1
	case ShotTwoPoint, ShotLayup, ShotDunk:
		return 2
	case ShotThreePoint:
		return 3
	}
	return 0
}

// Event is one immutable record from the game feed. Scores are absolute,
// not deltas. TimeRemaining is nil when the feed omitted it.
type Event struct {
	Type          EventType
	Side          Side
	HomeScore     int
	AwayScore     int
	ShotType      ShotType
	TimeRemaining *float64

	// Descriptive fields carried from the feed; the engine ignores them.
	Player            string
	SubstitutedPlayer string
	AssistPlayer      string
	ReboundType       string
	CoordinateX       *float64
	CoordinateY       *float64
}

// Seconds returns a pointer suitable for Event.TimeRemaining.
func Seconds(v float64) *float64 { return &v }
