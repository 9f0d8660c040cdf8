package feed

import (
	"github.com/rustyeddy/courtside/game"
)

// Record is the on-disk shape of one game event. Nullable fields are
// pointers; time_seconds null means the clock did not move.
type Record struct {
	EventType             string   `json:"event_type"`
	HomeAway              *string  `json:"home_away"`
	HomeScore             float64  `json:"home_score"`
	AwayScore             float64  `json:"away_score"`
	PlayerName            *string  `json:"player_name"`
	SubstitutedPlayerName *string  `json:"substituted_player_name"`
	ShotType              *string  `json:"shot_type"`
	AssistPlayer          *string  `json:"assist_player"`
	ReboundType           *string  `json:"rebound_type"`
	CoordinateX           *float64 `json:"coordinate_x"`
	CoordinateY           *float64 `json:"coordinate_y"`
	TimeSeconds           *float64 `json:"time_seconds"`

	MarketPrice *float64 `json:"market_price,omitempty"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Event converts the record to a game.Event.
func (r Record) Event() game.Event {
	return game.Event{
		Type:              game.ParseEventType(r.EventType),
		Side:              game.ParseSide(str(r.HomeAway)),
		HomeScore:         int(r.HomeScore),
		AwayScore:         int(r.AwayScore),
		ShotType:          game.ShotType(str(r.ShotType)),
		TimeRemaining:     r.TimeSeconds,
		Player:            str(r.PlayerName),
		SubstitutedPlayer: str(r.SubstitutedPlayerName),
		AssistPlayer:      str(r.AssistPlayer),
		ReboundType:       str(r.ReboundType),
		CoordinateX:       r.CoordinateX,
		CoordinateY:       r.CoordinateY,
	}
}

func (r Record) Item() Item {
	return Item{Event: r.Event(), MarketPrice: r.MarketPrice}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// RecordOf is the inverse of Record.Event for everything an Event carries.
func RecordOf(e game.Event) Record {
	return Record{
		EventType:             string(e.Type),
		HomeAway:              strPtr(string(e.Side)),
		HomeScore:             float64(e.HomeScore),
		AwayScore:             float64(e.AwayScore),
		PlayerName:            strPtr(e.Player),
		SubstitutedPlayerName: strPtr(e.SubstitutedPlayer),
		ShotType:              strPtr(string(e.ShotType)),
		AssistPlayer:          strPtr(e.AssistPlayer),
		ReboundType:           strPtr(e.ReboundType),
		CoordinateX:           e.CoordinateX,
		CoordinateY:           e.CoordinateY,
		TimeSeconds:           e.TimeRemaining,
	}
}
