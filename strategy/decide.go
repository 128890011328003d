// Package strategy picks a move for one tick: flood-fill reachability, the
// area-minus-risk heuristic and the max-score decision policy.
package strategy

import (
	"context"
	"math"

	"github.com/brensch/cycles/game"
	"golang.org/x/sync/errgroup"
)

// DefaultDirection is returned when no direction is legal.
const DefaultDirection = game.North

// Decision is the outcome of one tick's evaluation.
type Decision struct {
	Direction game.Direction
	Score     int
	Moves     [game.NumDirections]ScoredMove
}

// Legal reports whether the chosen direction was a legal move.
func (d Decision) Legal() bool {
	return d.Moves[d.Direction.Ordinal()].Legal
}

// Decide evaluates all four directions in enumeration order and picks the best.
func (e *Evaluator) Decide(state *game.GameState, pos game.Point) Decision {
	var moves [game.NumDirections]ScoredMove
	for i, d := range game.Directions {
		moves[i] = e.Evaluate(state, pos, d)
	}
	return choose(moves)
}

// DecideMove is the one-shot form of Evaluator.Decide.
func DecideMove(state *game.GameState, pos game.Point) game.Direction {
	var e Evaluator
	return e.Decide(state, pos).Direction
}

// DecideParallel evaluates the four directions concurrently, each with its
// own buffer. The reduction runs in enumeration order afterwards, so the
// result matches Decide exactly.
func DecideParallel(ctx context.Context, state *game.GameState, pos game.Point) (Decision, error) {
	var moves [game.NumDirections]ScoredMove

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(game.NumDirections)
	for i, d := range game.Directions {
		i, d := i, d
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var e Evaluator
			moves[i] = e.Evaluate(state, pos, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Decision{}, err
	}

	return choose(moves), nil
}

// choose keeps the first strictly greater score among legal moves, starting
// from DefaultDirection. Illegal moves only win when nothing is legal.
func choose(moves [game.NumDirections]ScoredMove) Decision {
	best := Decision{Direction: DefaultDirection, Score: math.MinInt, Moves: moves}
	for _, m := range moves {
		if !m.Legal {
			continue
		}
		if m.Score > best.Score {
			best.Score = m.Score
			best.Direction = m.Direction
		}
	}
	if best.Score == math.MinInt {
		best.Score = IllegalScore
	}
	return best
}
