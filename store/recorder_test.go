package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/brensch/cycles/bot"
	"github.com/brensch/cycles/game"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickReports(t *testing.T, n int) []bot.TickReport {
	t.Helper()
	b := bot.New("andrei", nil)
	state := game.NewGameState(5, 4)
	pos := game.Point{X: 1, Y: 1}
	state.Players = []game.Player{{ID: 1, Name: "andrei", Position: pos, Color: "#00ff00"}}

	var reports []bot.TickReport
	for i := 0; i < n; i++ {
		state = state.Clone()
		state.Frame = i
		state.Set(pos, 1)
		state.Players[0].Position = pos

		r, err := b.Tick(context.Background(), state)
		require.NoError(t, err)
		reports = append(reports, r)
		pos = pos.Step(r.Decision.Direction)
	}
	return reports
}

func TestRecorder_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, "andrei", 2, zerolog.Nop())
	require.NoError(t, err)

	reports := tickReports(t, 5)
	for _, r := range reports {
		rec.ObserveTick(r)
	}

	path, err := rec.Close()
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Equal(t, dir, filepath.Dir(path))

	tmp, err := os.ReadDir(filepath.Join(dir, "tmp"))
	require.NoError(t, err)
	assert.Empty(t, tmp)

	rows, err := ReadTicks(path)
	require.NoError(t, err)
	require.Len(t, rows, len(reports))

	_, err = uuid.Parse(rec.SessionID())
	require.NoError(t, err)

	for i, row := range rows {
		want := reports[i]
		assert.Equal(t, rec.SessionID(), row.SessionID)
		assert.Equal(t, "andrei", row.Bot)
		assert.Equal(t, int32(i), row.Frame)
		assert.True(t, row.SelfFound)
		assert.True(t, row.Evaluated)

		assert.Equal(t, want.State, row.GameState())

		decision, err := row.Decision()
		require.NoError(t, err)
		assert.Equal(t, want.Decision, decision)
	}
}

func TestRecorder_NothingRecorded(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, "andrei", 10, zerolog.Nop())
	require.NoError(t, err)

	path, err := rec.Close()
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := filepath.Glob(filepath.Join(dir, "*.parquet"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecorder_IgnoresTicksAfterClose(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, "andrei", 1, zerolog.Nop())
	require.NoError(t, err)

	reports := tickReports(t, 2)
	rec.ObserveTick(reports[0])
	path, err := rec.Close()
	require.NoError(t, err)

	rec.ObserveTick(reports[1])
	again, err := rec.Close()
	require.NoError(t, err)
	assert.Empty(t, again)

	rows, err := ReadTicks(path)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestTickRow_UnevaluatedTick(t *testing.T) {
	b := bot.New("andrei", nil)
	state := game.NewGameState(3, 3)
	state.Players = []game.Player{{ID: 2, Name: "someone", Position: game.Point{X: 2, Y: 2}}}

	report, err := b.Tick(context.Background(), state)
	require.NoError(t, err)

	row := RowFromReport("session", report, 0)
	assert.False(t, row.Evaluated)
	assert.Equal(t, int32(game.North.Ordinal()), row.Chosen)
	assert.Equal(t, []bool{false, false, false, false}, row.Legal)

	decision, err := row.Decision()
	require.NoError(t, err)
	assert.False(t, decision.Legal())
}

func TestTickRow_InvalidChosen(t *testing.T) {
	_, err := TickRow{Chosen: 9}.Decision()
	assert.Error(t, err)
}

func TestReadTicks_MissingFile(t *testing.T) {
	_, err := ReadTicks(filepath.Join(t.TempDir(), "nope.parquet"))
	assert.Error(t, err)
}
