package rules

import (
	"testing"

	"github.com/brensch/cycles/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// board builds a state from rows of '.', '#' and digits (trail ids).
func board(rows ...string) *game.GameState {
	s := game.NewGameState(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			switch {
			case c == '#':
				s.Set(game.Point{X: x, Y: y}, -1)
			case c >= '1' && c <= '9':
				s.Set(game.Point{X: x, Y: y}, int32(c-'0'))
			}
		}
	}
	return s
}

func logStep(t *testing.T, name string, before *game.GameState, moves map[string]game.Direction, after *game.GameState) {
	t.Helper()
	t.Logf("=== %s ===\nBefore: %s\n%sMoves: %v\nAfter: %s\n%s",
		name, game.Summary(before), game.Render(before, ""), moves, game.Summary(after), game.Render(after, ""))
}

func TestIsValidMove(t *testing.T) {
	s := board(
		"...",
		".1#",
		"...",
	)
	pos := game.Point{X: 1, Y: 1}

	assert.True(t, IsValidMove(s, pos, game.North))
	assert.False(t, IsValidMove(s, pos, game.East), "wall")
	assert.True(t, IsValidMove(s, pos, game.South))
	assert.True(t, IsValidMove(s, pos, game.West))

	corner := game.Point{X: 0, Y: 0}
	assert.False(t, IsValidMove(s, corner, game.North), "off top edge")
	assert.False(t, IsValidMove(s, corner, game.West), "off left edge")
	assert.False(t, IsValidMove(s, game.Point{X: 0, Y: 1}, game.East), "own trail")
}

func TestIsValidMove_OffBoardStart(t *testing.T) {
	s := board("...", "...")
	assert.NotPanics(t, func() {
		assert.False(t, IsValidMove(s, game.Point{X: -5, Y: -5}, game.North))
		assert.True(t, IsValidMove(s, game.Point{X: -1, Y: 0}, game.East), "lands on (0,0)")
	})
}

func TestRisk(t *testing.T) {
	s := board(
		"....",
		".#..",
		"....",
	)

	assert.Equal(t, 2, Risk(s, game.Point{X: 0, Y: 0}), "two edges")
	assert.Equal(t, 2, Risk(s, game.Point{X: 1, Y: 0}), "edge + wall below")
	assert.Equal(t, 1, Risk(s, game.Point{X: 2, Y: 1}), "wall to the west")
	assert.Equal(t, 1, Risk(s, game.Point{X: 2, Y: 2}), "bottom edge only")
	assert.Equal(t, 0, Risk(board("...", "...", "..."), game.Point{X: 1, Y: 1}))
}

func TestLegalMoves_Order(t *testing.T) {
	s := board(
		"...",
		"...",
		"...",
	)
	assert.Equal(t, []game.Direction{game.North, game.East, game.South, game.West}, LegalMoves(s, game.Point{X: 1, Y: 1}))
	assert.Equal(t, []game.Direction{game.East, game.South}, LegalMoves(s, game.Point{X: 0, Y: 0}))
}

func TestNextState_MovesAndLeavesTrail(t *testing.T) {
	before := board(
		".....",
		".1...",
		"...2.",
	)
	before.Players = []game.Player{
		{ID: 1, Name: "a", Position: game.Point{X: 1, Y: 1}},
		{ID: 2, Name: "b", Position: game.Point{X: 3, Y: 2}},
	}
	moves := map[string]game.Direction{"a": game.North, "b": game.East}

	after := NextState(before, moves)
	logStep(t, "normal move", before, moves, after)

	require.Len(t, after.Players, 2)
	assert.Equal(t, game.Point{X: 1, Y: 0}, after.Players[0].Position)
	assert.Equal(t, game.Point{X: 4, Y: 2}, after.Players[1].Position)
	assert.Equal(t, int32(1), after.Cell(game.Point{X: 1, Y: 0}))
	assert.Equal(t, int32(1), after.Cell(game.Point{X: 1, Y: 1}), "trail stays")
	assert.Equal(t, 1, after.Frame)
	assert.Equal(t, game.Empty, before.Cell(game.Point{X: 1, Y: 0}), "input untouched")
}

func TestNextState_Collisions(t *testing.T) {
	before := board(
		"1.2",
		"...",
		"3#.",
	)
	before.Players = []game.Player{
		{ID: 1, Name: "a", Position: game.Point{X: 0, Y: 0}},
		{ID: 2, Name: "b", Position: game.Point{X: 2, Y: 0}},
		{ID: 3, Name: "c", Position: game.Point{X: 0, Y: 2}},
	}
	// a and b meet head-on at (1,0); c drives into the wall.
	moves := map[string]game.Direction{"a": game.East, "b": game.West, "c": game.East}

	after := NextState(before, moves)
	logStep(t, "collisions", before, moves, after)

	assert.Empty(t, after.Players)
	assert.True(t, IsGameOver(after))
	assert.Equal(t, game.Empty, after.Cell(game.Point{X: 1, Y: 0}))
}

func TestNextState_MissingMoveKills(t *testing.T) {
	before := board("1..", "...", "..2")
	before.Players = []game.Player{
		{ID: 1, Name: "a", Position: game.Point{X: 0, Y: 0}},
		{ID: 2, Name: "b", Position: game.Point{X: 2, Y: 2}},
	}

	after := NextState(before, map[string]game.Direction{"a": game.South})
	require.Len(t, after.Players, 1)
	assert.Equal(t, "a", after.Players[0].Name)
	assert.True(t, IsGameOver(after))
	assert.False(t, IsGameOver(before))
}
