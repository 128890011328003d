// Package game defines the per-tick state types for the light-cycle game.
//
// A GameState is an immutable snapshot of one tick: board dimensions, the
// occupancy of every cell and the players still on the board. It is rebuilt
// from the server message every tick and discarded afterwards.
package game

// Empty marks an unoccupied cell. Any other value is a trail id or a wall.
const Empty int32 = 0

// Point is a board coordinate. (0,0) is the top-left cell; Y grows downward,
// so North is (0,-1).
type Point struct {
	X int
	Y int
}

// Add returns p displaced by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Step returns the neighbour of p in direction d.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Vector()
	return p.Add(dx, dy)
}

type Player struct {
	ID       int32
	Name     string
	Position Point
	Color    string
}

// GameState is the complete board for one tick.
// Cells is row-major: the cell (x,y) lives at Cells[y*Width+x].
type GameState struct {
	Width   int
	Height  int
	Cells   []int32
	Players []Player
	Frame   int
}

// NewGameState returns an empty width×height board.
func NewGameState(width, height int) *GameState {
	return &GameState{
		Width:  width,
		Height: height,
		Cells:  make([]int32, width*height),
	}
}

// InBounds reports whether p lies on the board.
func (s *GameState) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// Index returns the row-major index of an in-bounds point.
func (s *GameState) Index(p Point) int {
	return p.Y*s.Width + p.X
}

// Cell returns the raw cell value. Off-board points read as a wall (-1).
func (s *GameState) Cell(p Point) int32 {
	if !s.InBounds(p) {
		return -1
	}
	return s.Cells[s.Index(p)]
}

// Occupied reports whether p is a wall, a trail or off the board.
func (s *GameState) Occupied(p Point) bool {
	return s.Cell(p) != Empty
}

// Set writes v into an in-bounds cell. It is a no-op off the board.
// Only builders (the client decoder, rules.NextState, tests) call it;
// the decision path treats a GameState as read-only.
func (s *GameState) Set(p Point, v int32) {
	if s.InBounds(p) {
		s.Cells[s.Index(p)] = v
	}
}

// FindPlayer returns the player with exactly the given name.
func (s *GameState) FindPlayer(name string) (Player, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// Clone performs a deep copy of the game state.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}

	out := &GameState{
		Width:  s.Width,
		Height: s.Height,
		Frame:  s.Frame,
	}

	if len(s.Cells) > 0 {
		out.Cells = make([]int32, len(s.Cells))
		copy(out.Cells, s.Cells)
	}

	if len(s.Players) > 0 {
		out.Players = make([]Player, len(s.Players))
		copy(out.Players, s.Players)
	}

	return out
}
