package game

import "fmt"

// Direction is one of the four cardinal moves. The zero value is North.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// NumDirections is the size of the Direction enumeration.
const NumDirections = 4

// Directions is the fixed evaluation order. Tie-breaks depend on it.
var Directions = [NumDirections]Direction{North, East, South, West}

var directionVectors = [NumDirections][2]int{
	North: {0, -1},
	East:  {1, 0},
	South: {0, 1},
	West:  {-1, 0},
}

var directionNames = [NumDirections]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
}

// Vector returns the unit displacement of d.
func (d Direction) Vector() (dx, dy int) {
	if !d.IsValid() {
		return 0, 0
	}
	v := directionVectors[d]
	return v[0], v[1]
}

// Ordinal returns the position of d in Directions.
func (d Direction) Ordinal() int {
	return int(d)
}

func (d Direction) IsValid() bool {
	return d < NumDirections
}

func (d Direction) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// DirectionFromOrdinal is the inverse of Ordinal. Out-of-range values are rejected.
func DirectionFromOrdinal(i int) (Direction, bool) {
	if i < 0 || i >= NumDirections {
		return North, false
	}
	return Direction(i), true
}

// ParseDirection accepts the wire names produced by String.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
