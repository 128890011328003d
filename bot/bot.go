// Package bot runs the per-tick loop: receive a board, decide, send the move.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/brensch/cycles/game"
	"github.com/brensch/cycles/strategy"
	"github.com/rs/zerolog"
)

// Session is the game server as seen by the loop.
type Session interface {
	IsActive() bool
	ReceiveGameState(ctx context.Context) (*game.GameState, error)
	SendMove(ctx context.Context, d game.Direction) error
}

// TickReport describes one completed tick.
type TickReport struct {
	Bot   string
	Frame int
	State *game.GameState

	// Self is the position the decision was made from. SelfFound is false
	// when the player was missing from this tick's players; Evaluated is
	// false when no position was known at all and the default was sent.
	Self      game.Point
	SelfFound bool
	Evaluated bool

	Decision strategy.Decision
	Elapsed  time.Duration
}

// Observer is told about every tick after its move was sent.
// Implementations must not block; their failures are their own.
type Observer interface {
	ObserveTick(TickReport)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(TickReport)

func (f ObserverFunc) ObserveTick(r TickReport) { f(r) }

type Option func(*Bot)

// WithParallel evaluates the four directions concurrently.
func WithParallel(parallel bool) Option {
	return func(b *Bot) { b.parallel = parallel }
}

func WithObserver(o Observer) Option {
	return func(b *Bot) { b.observers = append(b.observers, o) }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

type Bot struct {
	name      string
	session   Session
	parallel  bool
	observers []Observer
	logger    zerolog.Logger

	evaluator strategy.Evaluator

	// Last known head position, carried over ticks where the player is missing.
	last game.Point
	seen bool
}

func New(name string, session Session, opts ...Option) *Bot {
	b := &Bot{
		name:    name,
		session: session,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With().Str("bot", name).Logger()
	return b
}

// Run loops until the session reports inactive or ctx is done, which are
// both clean exits. It returns an error only when a move cannot be sent on a
// session that still claims to be active.
func (b *Bot) Run(ctx context.Context) error {
	for b.session.IsActive() {
		if ctx.Err() != nil {
			return nil
		}

		// AwaitingState
		state, err := b.session.ReceiveGameState(ctx)
		if err != nil {
			if ctx.Err() != nil || !b.session.IsActive() {
				b.logger.Info().Err(err).Msg("session ended")
				return nil
			}
			b.logger.Warn().Err(err).Msg("skipping tick")
			continue
		}

		// AwaitingAck
		report, err := b.Tick(ctx, state)
		if err != nil {
			return nil
		}

		if !b.session.IsActive() {
			b.logger.Info().Int("frame", state.Frame).Msg("session ended before the move was sent")
			return nil
		}
		b.logger.Debug().Stringer("direction", report.Decision.Direction).Msg("sending move")
		if err := b.session.SendMove(ctx, report.Decision.Direction); err != nil {
			if ctx.Err() != nil || !b.session.IsActive() {
				b.logger.Info().Err(err).Msg("session ended")
				return nil
			}
			return fmt.Errorf("send move: %w", err)
		}

		for _, o := range b.observers {
			o.ObserveTick(report)
		}
	}

	b.logger.Info().Msg("session inactive")
	return nil
}

// Tick decides a move for one state without touching the session.
// It fails only when ctx ends during a parallel evaluation.
func (b *Bot) Tick(ctx context.Context, state *game.GameState) (TickReport, error) {
	start := time.Now()
	report := TickReport{
		Bot:   b.name,
		Frame: state.Frame,
		State: state,
	}

	self, found := state.FindPlayer(b.name)
	switch {
	case found:
		b.last = self.Position
		b.seen = true
	case b.seen:
		b.logger.Warn().Int("frame", state.Frame).Int("x", b.last.X).Int("y", b.last.Y).
			Msg("player missing from state, using last known position")
	default:
		b.logger.Warn().Int("frame", state.Frame).Msg("player missing from state and never seen, sending default direction")
		report.Decision = strategy.Decision{Direction: strategy.DefaultDirection, Score: strategy.IllegalScore}
		for i, d := range game.Directions {
			report.Decision.Moves[i] = strategy.ScoredMove{Direction: d, Score: strategy.IllegalScore}
		}
		report.Elapsed = time.Since(start)
		return report, nil
	}
	report.Self = b.last
	report.SelfFound = found
	report.Evaluated = true

	if b.parallel {
		decision, err := strategy.DecideParallel(ctx, state, b.last)
		if err != nil {
			return TickReport{}, err
		}
		report.Decision = decision
	} else {
		report.Decision = b.evaluator.Decide(state, b.last)
	}
	report.Elapsed = time.Since(start)

	for _, m := range report.Decision.Moves {
		b.logger.Debug().Stringer("direction", m.Direction).Int("score", m.Score).
			Bool("legal", m.Legal).Int("area", m.Area).Int("risk", m.Risk).Msg("scored move")
	}
	b.logger.Debug().Int("frame", state.Frame).Stringer("direction", report.Decision.Direction).
		Int("score", report.Decision.Score).Dur("elapsed", report.Elapsed).Msg("chose direction")

	return report, nil
}
