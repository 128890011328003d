package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/brensch/cycles/bot"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Recorder is a bot.Observer that writes every tick to one Parquet file per
// session. Rows are buffered and written as a row group every flushEvery
// ticks. A write failure disables the recorder; the bot is never affected.
type Recorder struct {
	mu sync.Mutex

	sessionID  string
	flushEvery int
	writer     *BatchWriter
	pending    []TickRow
	err        error
	closed     bool

	logger zerolog.Logger
	now    func() time.Time
}

var _ bot.Observer = (*Recorder)(nil)

func NewRecorder(dir, botName string, flushEvery int, logger zerolog.Logger) (*Recorder, error) {
	if flushEvery <= 0 {
		flushEvery = 1
	}
	sessionID := uuid.NewString()
	name := fmt.Sprintf("ticks_%d_%s.parquet", time.Now().UnixNano(), sessionID)

	w, err := NewBatchWriter(dir, name, map[string]string{
		"session_id": sessionID,
		"bot":        botName,
	})
	if err != nil {
		return nil, err
	}

	return &Recorder{
		sessionID:  sessionID,
		flushEvery: flushEvery,
		writer:     w,
		pending:    make([]TickRow, 0, flushEvery),
		logger:     logger.With().Str("session_id", sessionID).Logger(),
		now:        time.Now,
	}, nil
}

func (r *Recorder) SessionID() string { return r.sessionID }

// Err returns the failure that disabled the recorder, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) ObserveTick(report bot.TickReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.err != nil {
		return
	}

	r.pending = append(r.pending, RowFromReport(r.sessionID, report, r.now().UnixMilli()))
	if len(r.pending) < r.flushEvery {
		return
	}
	if err := r.flushLocked(); err != nil {
		r.err = err
		r.logger.Error().Err(err).Int("frame", report.Frame).Msg("recording disabled")
	}
}

func (r *Recorder) flushLocked() error {
	if len(r.pending) == 0 {
		return nil
	}
	if err := r.writer.WriteRows(r.pending); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	if err := r.writer.Flush(); err != nil {
		return fmt.Errorf("flush row group: %w", err)
	}
	r.logger.Debug().Int("rows", len(r.pending)).Int("total", r.writer.BufferedRows()).Msg("flushed ticks")
	r.pending = r.pending[:0]
	return nil
}

// Close writes any buffered ticks and publishes the file. It returns the
// final path, or "" when nothing was recorded.
func (r *Recorder) Close() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return "", nil
	}
	r.closed = true

	var flushErr error
	if r.err == nil {
		flushErr = r.flushLocked()
	}
	path, rows, err := r.writer.Finalize()
	if flushErr != nil {
		return "", flushErr
	}
	if err != nil {
		return "", err
	}
	if path != "" {
		r.logger.Info().Str("path", path).Int("rows", rows).Msg("recording written")
	}
	return path, r.err
}
