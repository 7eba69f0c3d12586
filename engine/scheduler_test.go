package engine_test

import (
	"errors"
	"testing"

	"github.com/informatter/text-tetris-engine/engine"
	"github.com/informatter/text-tetris-engine/grid"
	"github.com/informatter/text-tetris-engine/polyomino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSystem struct {
	ExecuteCount int
	Steps        []int64
}

func (s *countingSystem) Execute(frame *engine.Frame) error {
	s.ExecuteCount++
	s.Steps = append(s.Steps, frame.Step)
	return nil
}

func (s *countingSystem) Reset() {
	s.ExecuteCount = 0
}

type failingSystem struct {
	err error
}

func (s *failingSystem) Execute(frame *engine.Frame) error {
	return s.err
}

type deletingSystem struct {
	id       grid.Owner
	deferred int
}

func (s *deletingSystem) Execute(frame *engine.Frame) error {
	frame.Commands.Delete(s.id)
	frame.Commands.Defer(func() { s.deferred++ })
	return nil
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		scheduler := engine.NewScheduler(grid.New(4, 4), engine.NewStorage())
		first := &countingSystem{}
		second := &countingSystem{}
		scheduler.Register(first)
		scheduler.Register(second)

		_, err := scheduler.Once(engine.Token{Code: "Q", Column: 0})
		require.NoError(t, err)
		_, err = scheduler.Once(engine.Token{Code: "Q", Column: 2})
		require.NoError(t, err)

		assert.Equal(t, 2, first.ExecuteCount)
		assert.Equal(t, []int64{1, 2}, second.Steps)
	})

	t.Run("error aborts the frame", func(t *testing.T) {
		storage := engine.NewStorage()
		storage.Spawn(polyomino.New(7, polyomino.Q))

		boom := errors.New("boom")
		deleter := &deletingSystem{id: 7}
		after := &countingSystem{}

		scheduler := engine.NewScheduler(grid.New(4, 4), storage)
		scheduler.Register(deleter)
		scheduler.Register(&failingSystem{err: boom})
		scheduler.Register(after)

		_, err := scheduler.Once(engine.Token{Code: "Q", Column: 0})
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failingSystem")

		assert.Equal(t, 0, after.ExecuteCount)
		assert.Equal(t, 1, storage.Len(), "queued deletes are discarded")
		assert.Equal(t, 0, deleter.deferred)

		stats := scheduler.GetStats()
		assert.Equal(t, int64(1), stats.FailedFrames)
		assert.Equal(t, int64(2), stats.TotalExecutions)
	})

	t.Run("commands flush after the frame", func(t *testing.T) {
		storage := engine.NewStorage()
		storage.Spawn(polyomino.New(1, polyomino.I))
		storage.Spawn(polyomino.New(2, polyomino.Q))

		deleter := &deletingSystem{id: 1}
		scheduler := engine.NewScheduler(grid.New(4, 4), storage)
		scheduler.Register(deleter)

		frame, err := scheduler.Once(engine.Token{Code: "I", Column: 0})
		require.NoError(t, err)

		assert.Equal(t, 0, frame.Commands.Pending())
		assert.Equal(t, 1, deleter.deferred)
		assert.Nil(t, storage.Get(1))
		assert.NotNil(t, storage.Get(2))
	})

	t.Run("cleared rows are counted when the frame completes", func(t *testing.T) {
		g := grid.New(2, 2)
		g.Occupy(1, 0, 1)
		g.Occupy(1, 1, 1)
		lineClear := &engine.LineClearSystem{}

		scheduler := engine.NewScheduler(g, engine.NewStorage())
		scheduler.Register(lineClear)

		frame, err := scheduler.Once(engine.Token{Code: "I", Column: 0})
		require.NoError(t, err)
		assert.Equal(t, []int{1}, frame.Cleared)
		assert.Equal(t, 1, lineClear.RowsCleared)
		assert.Equal(t, 0, g.OccupiedCount())
	})

	t.Run("aborted frame does not count cleared rows", func(t *testing.T) {
		g := grid.New(2, 2)
		g.Occupy(1, 0, 1)
		g.Occupy(1, 1, 1)
		lineClear := &engine.LineClearSystem{}

		scheduler := engine.NewScheduler(g, engine.NewStorage())
		scheduler.Register(lineClear)
		scheduler.Register(&failingSystem{err: errors.New("boom")})

		_, err := scheduler.Once(engine.Token{Code: "I", Column: 0})
		require.Error(t, err)
		assert.Equal(t, 0, lineClear.RowsCleared)
	})

	t.Run("reset restarts steps and system state", func(t *testing.T) {
		scheduler := engine.NewScheduler(grid.New(4, 4), engine.NewStorage())
		counter := &countingSystem{}
		scheduler.Register(counter)

		for range 3 {
			_, err := scheduler.Once(engine.Token{Code: "Q", Column: 0})
			require.NoError(t, err)
		}
		scheduler.Reset()
		assert.Equal(t, 0, counter.ExecuteCount)

		frame, err := scheduler.Once(engine.Token{Code: "Q", Column: 0})
		require.NoError(t, err)
		assert.Equal(t, int64(1), frame.Step)

		stats := scheduler.GetStats()
		assert.Equal(t, int64(4), stats.FrameCount, "stats survive a reset")
		assert.Equal(t, "countingSystem", stats.Systems[0].Name)
		assert.Equal(t, int64(4), stats.Systems[0].ExecutionCount)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})

	t.Run("empty stats", func(t *testing.T) {
		scheduler := engine.NewScheduler(grid.New(4, 4), engine.NewStorage())
		scheduler.Register(&countingSystem{})

		stats := scheduler.GetStats()
		assert.Equal(t, 1, stats.SystemCount)
		assert.Equal(t, int64(0), stats.TotalExecutions)
		assert.Zero(t, stats.Systems[0].MinDuration)
		assert.Zero(t, stats.Systems[0].AvgDuration)
	})
}
