package strategy

import (
	"github.com/brensch/cycles/game"
)

// FloodFillArea counts the empty cells reachable from start through the four
// cardinal neighbours, start included.
//
// visited must already mark every occupied cell and anything else the caller
// wants excluded. Each counted cell is marked in visited. The fill is
// breadth-first so the queue never holds more than Width×Height points.
// A start that is off the board, occupied or already visited yields 0.
func FloodFillArea(state *game.GameState, visited *Scratch, start game.Point) int {
	if !state.InBounds(start) || state.Occupied(start) || visited.Visited(start) {
		return 0
	}

	q := append(visited.queue[:0], start)
	visited.Mark(start)

	area := 0
	for head := 0; head < len(q); head++ {
		current := q[head]
		area++

		for _, d := range game.Directions {
			next := current.Step(d)
			if state.InBounds(next) && !state.Occupied(next) && !visited.Visited(next) {
				visited.Mark(next)
				q = append(q, next)
			}
		}
	}

	// Keep the grown backing array for the next fill.
	visited.queue = q[:0]
	return area
}
