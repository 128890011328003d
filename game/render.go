package game

import (
	"fmt"
	"strings"
)

// Render returns an ASCII view of the board, one row per line.
// Empty cells are '.', trails are 'a'+(id-1) and walls '#'. The player named
// self is drawn as 'O' and other heads as 'S'.
func Render(state *GameState, self string) string {
	if state == nil {
		return "<nil state>\n"
	}

	heads := make(map[Point]byte, len(state.Players))
	for _, p := range state.Players {
		if p.Name == self {
			heads[p.Position] = 'O'
		} else {
			heads[p.Position] = 'S'
		}
	}

	var sb strings.Builder
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			pt := Point{X: x, Y: y}
			if h, ok := heads[pt]; ok {
				sb.WriteByte(h)
				continue
			}
			sb.WriteByte(cellGlyph(state.Cell(pt)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary is a one-line header used above a rendered board.
func Summary(state *GameState) string {
	if state == nil {
		return "<nil state>"
	}
	return fmt.Sprintf("Frame=%d Size=%dx%d Players=%d", state.Frame, state.Width, state.Height, len(state.Players))
}

func cellGlyph(v int32) byte {
	switch {
	case v == Empty:
		return '.'
	case v > 0 && v <= 26:
		return byte('a' + v - 1)
	default:
		return '#'
	}
}
