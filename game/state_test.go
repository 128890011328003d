package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionVectors_Bijective(t *testing.T) {
	want := map[[2]int]Direction{
		{0, -1}: North,
		{1, 0}:  East,
		{0, 1}:  South,
		{-1, 0}: West,
	}

	seen := make(map[[2]int]bool)
	for _, d := range Directions {
		dx, dy := d.Vector()
		v := [2]int{dx, dy}
		assert.False(t, seen[v], "vector %v mapped twice", v)
		seen[v] = true
		assert.Equal(t, want[v], d)
	}
	assert.Len(t, seen, NumDirections)
}

func TestDirections_Order(t *testing.T) {
	assert.Equal(t, [NumDirections]Direction{North, East, South, West}, Directions)
	for i, d := range Directions {
		assert.Equal(t, i, d.Ordinal())
		back, ok := DirectionFromOrdinal(i)
		require.True(t, ok)
		assert.Equal(t, d, back)
	}
}

func TestDirectionFromOrdinal_OutOfRange(t *testing.T) {
	for _, i := range []int{-1, 4, 100} {
		d, ok := DirectionFromOrdinal(i)
		assert.False(t, ok, "ordinal %d", i)
		assert.Equal(t, North, d)
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := ParseDirection("up")
	assert.Error(t, err)

	assert.Equal(t, "direction(7)", Direction(7).String())
	dx, dy := Direction(7).Vector()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestDirection_TextRoundTrip(t *testing.T) {
	b, err := West.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "west", string(b))

	var d Direction
	require.NoError(t, d.UnmarshalText([]byte("south")))
	assert.Equal(t, South, d)

	_, err = Direction(9).MarshalText()
	assert.Error(t, err)
}

func TestGameState_OccupiedOffBoard(t *testing.T) {
	s := NewGameState(3, 2)
	s.Set(Point{X: 2, Y: 1}, 4)

	assert.False(t, s.Occupied(Point{X: 0, Y: 0}))
	assert.True(t, s.Occupied(Point{X: 2, Y: 1}))
	for _, p := range []Point{{-1, 0}, {3, 0}, {0, -1}, {0, 2}} {
		assert.True(t, s.Occupied(p), "off-board %v", p)
	}

	// Writes off the board are ignored.
	s.Set(Point{X: 5, Y: 5}, 1)
	assert.Equal(t, []int32{0, 0, 0, 0, 0, 4}, s.Cells)
}

func TestGameState_CloneIsDeep(t *testing.T) {
	s := NewGameState(2, 2)
	s.Players = []Player{{ID: 1, Name: "me", Position: Point{X: 1, Y: 1}}}
	s.Set(Point{X: 1, Y: 1}, 1)

	c := s.Clone()
	c.Set(Point{X: 0, Y: 0}, 2)
	c.Players[0].Name = "other"

	assert.False(t, s.Occupied(Point{X: 0, Y: 0}))
	assert.Equal(t, "me", s.Players[0].Name)
	assert.Nil(t, (*GameState)(nil).Clone())
}

func TestGameState_FindPlayer(t *testing.T) {
	s := NewGameState(4, 4)
	s.Players = []Player{
		{ID: 1, Name: "alice", Position: Point{X: 0, Y: 0}},
		{ID: 2, Name: "bob", Position: Point{X: 3, Y: 3}},
	}

	p, ok := s.FindPlayer("bob")
	require.True(t, ok)
	assert.Equal(t, Point{X: 3, Y: 3}, p.Position)

	_, ok = s.FindPlayer("Bob")
	assert.False(t, ok, "names match exactly")
}

func TestRender(t *testing.T) {
	s := NewGameState(3, 2)
	s.Set(Point{X: 0, Y: 0}, 1)
	s.Set(Point{X: 1, Y: 0}, 2)
	s.Set(Point{X: 2, Y: 1}, -5)
	s.Players = []Player{
		{ID: 1, Name: "me", Position: Point{X: 0, Y: 0}},
		{ID: 2, Name: "them", Position: Point{X: 1, Y: 0}},
	}

	assert.Equal(t, "OS.\n..#\n", Render(s, "me"))
	assert.Equal(t, "Frame=0 Size=3x2 Players=2", Summary(s))
}
