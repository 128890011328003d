package rules

import (
	"github.com/brensch/cycles/game"
)

// Vector returns the unit displacement for d.
func Vector(d game.Direction) (dx, dy int) {
	return d.Vector()
}

// IsValidMove reports whether moving from pos in direction d lands on an
// empty in-bounds cell. It never panics, even when pos itself is off the board.
func IsValidMove(state *game.GameState, pos game.Point, d game.Direction) bool {
	next := pos.Step(d)
	if !state.InBounds(next) {
		return false
	}
	if state.Occupied(next) {
		return false
	}
	return true
}

// Blocked reports whether p is off the board or occupied.
func Blocked(state *game.GameState, p game.Point) bool {
	return !state.InBounds(p) || state.Occupied(p)
}

// Risk counts the cardinal neighbours of p that are blocked.
func Risk(state *game.GameState, p game.Point) int {
	risk := 0
	for _, d := range game.Directions {
		if Blocked(state, p.Step(d)) {
			risk++
		}
	}
	return risk
}

// LegalMoves returns the valid directions from pos in enumeration order.
func LegalMoves(state *game.GameState, pos game.Point) []game.Direction {
	moves := make([]game.Direction, 0, game.NumDirections)
	for _, d := range game.Directions {
		if IsValidMove(state, pos, d) {
			moves = append(moves, d)
		}
	}
	return moves
}

// NextState advances every player named in moves by one cell.
//
// Each surviving player leaves its id in the cell it moves into. A player dies
// (and is dropped from Players, its trail stays) when it moves off the board,
// into an occupied cell, or into the same cell as another player this frame.
// Players without a move are treated as dead.
func NextState(state *game.GameState, moves map[string]game.Direction) *game.GameState {
	newState := state.Clone()
	newState.Frame++

	// 1. Calculate new heads
	heads := make(map[string]game.Point, len(newState.Players))
	dead := make(map[string]bool)
	for _, p := range newState.Players {
		d, ok := moves[p.Name]
		if !ok || !d.IsValid() {
			dead[p.Name] = true
			continue
		}
		heads[p.Name] = p.Position.Step(d)
	}

	// 2. Wall and trail collisions against the board before the move
	for name, h := range heads {
		if Blocked(state, h) {
			dead[name] = true
		}
	}

	// 3. Head-to-head: everyone entering a shared cell dies
	entering := make(map[game.Point]int, len(heads))
	for _, h := range heads {
		entering[h]++
	}
	for name, h := range heads {
		if entering[h] > 1 {
			dead[name] = true
		}
	}

	// 4. Apply moves and drop the dead
	alive := make([]game.Player, 0, len(newState.Players))
	for _, p := range newState.Players {
		if dead[p.Name] {
			continue
		}
		p.Position = heads[p.Name]
		newState.Set(p.Position, p.ID)
		alive = append(alive, p)
	}
	newState.Players = alive

	return newState
}

// IsGameOver returns true when at most one player is left.
func IsGameOver(state *game.GameState) bool {
	return len(state.Players) <= 1
}
