package strategy

import (
	"github.com/brensch/cycles/game"
	"github.com/brensch/cycles/rules"
)

const (
	// IllegalScore is reported for a move that leaves the board or hits a trail.
	IllegalScore = -1

	// RiskPenalty is the number of cells of room one blocked neighbour is worth.
	RiskPenalty = 10
)

// ScoredMove is the evaluation of one direction for one tick.
// A legal move can score IllegalScore too, so Legal is the authority.
type ScoredMove struct {
	Direction game.Direction
	Score     int
	Area      int
	Risk      int
	Legal     bool
}

// Score combines reachable area and adjacency risk.
func Score(area, risk int) int {
	return area - risk*RiskPenalty
}

// Evaluator scores moves, reusing one visited buffer between evaluations.
// The zero value is ready to use. An Evaluator is not safe for concurrent use.
type Evaluator struct {
	scratch Scratch
}

// Evaluate scores moving from pos in direction d.
//
// The player's current cell is excluded from the fill on top of the board's
// occupancy: the cycle leaves its trail there whether or not the snapshot
// already marks it. Risk is read from the board as sent.
func (e *Evaluator) Evaluate(state *game.GameState, pos game.Point, d game.Direction) ScoredMove {
	if !rules.IsValidMove(state, pos, d) {
		return ScoredMove{Direction: d, Score: IllegalScore}
	}

	next := pos.Step(d)

	e.scratch.Seed(state, pos)
	area := FloodFillArea(state, &e.scratch, next)
	risk := rules.Risk(state, next)

	return ScoredMove{
		Direction: d,
		Score:     Score(area, risk),
		Area:      area,
		Risk:      risk,
		Legal:     true,
	}
}

// EvaluateMove scores a single move with a throwaway buffer.
func EvaluateMove(state *game.GameState, pos game.Point, d game.Direction) int {
	var e Evaluator
	return e.Evaluate(state, pos, d).Score
}
