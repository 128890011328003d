package strategy

import (
	"github.com/brensch/cycles/game"
)

// Scratch is the visited set for one flood fill, plus the BFS queue backing it.
//
// A Scratch is owned by exactly one evaluation at a time. Seed (or Reset)
// must be called before every fill: FloodFillArea marks the cells it counts,
// so a used Scratch no longer describes the board.
type Scratch struct {
	width   int
	height  int
	visited []bool
	queue   []game.Point
}

// NewScratch returns a cleared width×height visited set.
func NewScratch(width, height int) *Scratch {
	s := &Scratch{}
	s.Reset(width, height)
	return s
}

// Reset resizes the buffer if needed and clears every cell.
func (s *Scratch) Reset(width, height int) {
	n := width * height
	if cap(s.visited) < n {
		s.visited = make([]bool, n)
	} else {
		s.visited = s.visited[:n]
		clear(s.visited)
	}
	s.width = width
	s.height = height
	s.queue = s.queue[:0]
}

// Seed resets the buffer to the board's size and marks every occupied cell,
// plus the extra excluded points, as visited.
func (s *Scratch) Seed(state *game.GameState, exclude ...game.Point) {
	s.Reset(state.Width, state.Height)
	for i, v := range state.Cells {
		if i >= len(s.visited) {
			break
		}
		if v != game.Empty {
			s.visited[i] = true
		}
	}
	for _, p := range exclude {
		s.Mark(p)
	}
}

func (s *Scratch) inBounds(p game.Point) bool {
	return p.X >= 0 && p.X < s.width && p.Y >= 0 && p.Y < s.height
}

// Visited reports whether p is marked. Off-board points count as visited.
func (s *Scratch) Visited(p game.Point) bool {
	if !s.inBounds(p) {
		return true
	}
	return s.visited[p.Y*s.width+p.X]
}

// Mark sets p as visited. Off-board points are ignored.
func (s *Scratch) Mark(p game.Point) {
	if s.inBounds(p) {
		s.visited[p.Y*s.width+p.X] = true
	}
}

// Count returns the number of marked cells.
func (s *Scratch) Count() int {
	n := 0
	for _, v := range s.visited {
		if v {
			n++
		}
	}
	return n
}
