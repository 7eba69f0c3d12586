package engine

import (
	"fmt"
	"reflect"
	"time"

	"github.com/informatter/text-tetris-engine/grid"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	FrameCount      int64
	FailedFrames    int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs the registered systems once per token, in order.
type Scheduler struct {
	grid         *grid.Grid
	storage      *Storage
	systems      []System
	systemStats  []*systemStatsInternal
	step         int64
	frameCount   int64
	failedFrames int64
}

// NewScheduler creates a scheduler over the given grid and storage.
func NewScheduler(g *grid.Grid, storage *Storage) *Scheduler {
	return &Scheduler{
		grid:    g,
		storage: storage,
		systems: make([]System, 0),
	}
}

// Register appends a system to the pipeline.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once runs every system for one token and flushes the queued commands.
// The first system error aborts the frame; commands queued so far are
// discarded.
func (s *Scheduler) Once(token Token) (*Frame, error) {
	s.step++
	s.frameCount++
	frame := newFrame(s.step, token, s.grid, s.storage)

	for i, system := range s.systems {
		start := time.Now()
		err := system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		if err != nil {
			s.failedFrames++
			return frame, fmt.Errorf("%s: %w", stats.name, err)
		}
	}

	frame.Commands.Flush(s.storage)
	return frame, nil
}

// Reset restarts the step counter and clears the state of every system that
// keeps some. Execution statistics are kept.
func (s *Scheduler) Reset() {
	s.step = 0
	for _, system := range s.systems {
		if r, ok := system.(resetter); ok {
			r.Reset()
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:  len(s.systems),
		FrameCount:   s.frameCount,
		FailedFrames: s.failedFrames,
		Systems:      make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
