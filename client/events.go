package client

import (
	"encoding/json"
	"fmt"

	"github.com/brensch/cycles/game"
)

// Event types on the wire.
const (
	EventJoin     = "join"
	EventMove     = "move"
	EventGameInfo = "game_info"
	EventState    = "state"
	EventGameEnd  = "game_end"
)

// Event is the envelope for every message in either direction.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// JoinData is sent once after connecting.
type JoinData struct {
	Name string `json:"name"`
}

// MoveData carries the chosen direction as "north", "east", "south" or "west".
type MoveData struct {
	Direction game.Direction `json:"direction"`
}

// GameInfo from the optional "game_info" event.
type GameInfo struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Players []string `json:"players,omitempty"`
}

// StateData from "state" events: one full board per tick.
type StateData struct {
	Frame   int          `json:"frame"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Cells   []int32      `json:"cells"`
	Players []PlayerData `json:"players"`
}

type PlayerData struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Position Coord  `json:"position"`
	Color    string `json:"color,omitempty"`
}

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewEvent wraps data in an envelope of the given type.
func NewEvent(eventType string, data any) (Event, error) {
	if data == nil {
		return Event{Type: eventType}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s: %w", eventType, err)
	}
	return Event{Type: eventType, Data: raw}, nil
}

// ToGameState validates the payload and converts it into a board snapshot.
func (d StateData) ToGameState() (*game.GameState, error) {
	if d.Width <= 0 || d.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedState, d.Width, d.Height)
	}
	if len(d.Cells) != d.Width*d.Height {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d board", ErrMalformedState, len(d.Cells), d.Width, d.Height)
	}

	state := &game.GameState{
		Width:  d.Width,
		Height: d.Height,
		Frame:  d.Frame,
		Cells:  make([]int32, len(d.Cells)),
	}
	copy(state.Cells, d.Cells)

	state.Players = make([]game.Player, len(d.Players))
	for i, p := range d.Players {
		state.Players[i] = game.Player{
			ID:       p.ID,
			Name:     p.Name,
			Position: game.Point{X: p.Position.X, Y: p.Position.Y},
			Color:    p.Color,
		}
	}
	return state, nil
}

// FromGameState is the inverse of ToGameState, used by servers and tests.
func FromGameState(s *game.GameState) StateData {
	d := StateData{
		Frame:   s.Frame,
		Width:   s.Width,
		Height:  s.Height,
		Cells:   make([]int32, len(s.Cells)),
		Players: make([]PlayerData, len(s.Players)),
	}
	copy(d.Cells, s.Cells)
	for i, p := range s.Players {
		d.Players[i] = PlayerData{
			ID:       p.ID,
			Name:     p.Name,
			Position: Coord{X: p.Position.X, Y: p.Position.Y},
			Color:    p.Color,
		}
	}
	return d
}
