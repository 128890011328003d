// Package store records per-tick decisions to Parquet and reads them back.
package store

import (
	"fmt"

	"github.com/brensch/cycles/bot"
	"github.com/brensch/cycles/game"
	"github.com/brensch/cycles/strategy"
	"github.com/parquet-go/parquet-go"
)

// SchemaVersion is written into every file's key/value metadata.
const SchemaVersion = "tick_row_v1"

// TickRow is one decision made by one bot.
//
// Cells is the board exactly as received, row-major. The per-direction
// columns (Scores, Areas, Risks, Legal) are indexed by direction ordinal:
// 0=North, 1=East, 2=South, 3=West. Chosen uses the same ordinals.
type TickRow struct {
	SessionID string `parquet:"session_id,dict"`
	Bot       string `parquet:"bot,dict"`
	Frame     int32  `parquet:"frame"`
	Width     int32  `parquet:"width"`
	Height    int32  `parquet:"height"`

	Cells   []int32     `parquet:"cells"`
	Players []PlayerRow `parquet:"players"`

	SelfX     int32 `parquet:"self_x"`
	SelfY     int32 `parquet:"self_y"`
	SelfFound bool  `parquet:"self_found"`
	Evaluated bool  `parquet:"evaluated"`

	Scores []int32 `parquet:"scores"`
	Areas  []int32 `parquet:"areas"`
	Risks  []int32 `parquet:"risks"`
	Legal  []bool  `parquet:"legal"`
	Chosen int32   `parquet:"chosen"`
	Score  int32   `parquet:"score"`

	ElapsedMicros int64 `parquet:"elapsed_us"`
	RecordedAtMs  int64 `parquet:"recorded_at_ms"`
}

type PlayerRow struct {
	ID    int32  `parquet:"id"`
	Name  string `parquet:"name,dict"`
	X     int32  `parquet:"x"`
	Y     int32  `parquet:"y"`
	Color string `parquet:"color,dict,optional"`
}

// RowFromReport flattens a tick report into a row.
func RowFromReport(sessionID string, r bot.TickReport, recordedAtMs int64) TickRow {
	row := TickRow{
		SessionID:     sessionID,
		Bot:           r.Bot,
		Frame:         int32(r.Frame),
		SelfX:         int32(r.Self.X),
		SelfY:         int32(r.Self.Y),
		SelfFound:     r.SelfFound,
		Evaluated:     r.Evaluated,
		Scores:        make([]int32, game.NumDirections),
		Areas:         make([]int32, game.NumDirections),
		Risks:         make([]int32, game.NumDirections),
		Legal:         make([]bool, game.NumDirections),
		Chosen:        int32(r.Decision.Direction.Ordinal()),
		Score:         int32(r.Decision.Score),
		ElapsedMicros: r.Elapsed.Microseconds(),
		RecordedAtMs:  recordedAtMs,
	}

	if s := r.State; s != nil {
		row.Width = int32(s.Width)
		row.Height = int32(s.Height)
		row.Cells = make([]int32, len(s.Cells))
		copy(row.Cells, s.Cells)
		row.Players = make([]PlayerRow, len(s.Players))
		for i, p := range s.Players {
			row.Players[i] = PlayerRow{
				ID:    p.ID,
				Name:  p.Name,
				X:     int32(p.Position.X),
				Y:     int32(p.Position.Y),
				Color: p.Color,
			}
		}
	}

	for i, m := range r.Decision.Moves {
		row.Scores[i] = int32(m.Score)
		row.Areas[i] = int32(m.Area)
		row.Risks[i] = int32(m.Risk)
		row.Legal[i] = m.Legal
	}
	return row
}

// GameState rebuilds the board the decision was made on.
func (row TickRow) GameState() *game.GameState {
	s := &game.GameState{
		Width:   int(row.Width),
		Height:  int(row.Height),
		Frame:   int(row.Frame),
		Cells:   make([]int32, len(row.Cells)),
		Players: make([]game.Player, len(row.Players)),
	}
	copy(s.Cells, row.Cells)
	for i, p := range row.Players {
		s.Players[i] = game.Player{
			ID:       p.ID,
			Name:     p.Name,
			Position: game.Point{X: int(p.X), Y: int(p.Y)},
			Color:    p.Color,
		}
	}
	return s
}

// Decision rebuilds the scored moves and the chosen direction.
// Rows written by another schema version may carry short per-direction
// columns; missing entries read as illegal.
func (row TickRow) Decision() (strategy.Decision, error) {
	chosen, ok := game.DirectionFromOrdinal(int(row.Chosen))
	if !ok {
		return strategy.Decision{}, fmt.Errorf("frame %d: invalid chosen direction %d", row.Frame, row.Chosen)
	}

	d := strategy.Decision{Direction: chosen, Score: int(row.Score)}
	for i, dir := range game.Directions {
		m := strategy.ScoredMove{Direction: dir, Score: strategy.IllegalScore}
		if i < len(row.Scores) {
			m.Score = int(row.Scores[i])
		}
		if i < len(row.Areas) {
			m.Area = int(row.Areas[i])
		}
		if i < len(row.Risks) {
			m.Risk = int(row.Risks[i])
		}
		if i < len(row.Legal) {
			m.Legal = row.Legal[i]
		}
		d.Moves[i] = m
	}
	return d, nil
}

// ReadTicks loads every row of a recording.
func ReadTicks(path string) ([]TickRow, error) {
	rows, err := parquet.ReadFile[TickRow](path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}
