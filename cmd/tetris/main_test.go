package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/informatter/text-tetris-engine/internal/monitoring"
	"github.com/informatter/text-tetris-engine/polyomino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunSequence(t *testing.T) {
	stdout, stderr, err := runCLI(t, "", "Q0,Q1")
	require.NoError(t, err)
	assert.Equal(t, "4\n", stdout)
	assert.Empty(t, stderr)
}

func TestRunBatch(t *testing.T) {
	input := "Q0\nQ0,Q1\n\nI0,I4,Q8\nL0,J3,L5,J8,T1,T6,S2,Z5,T0,T7\n"
	stdout, _, err := runCLI(t, input)
	require.NoError(t, err)

	want := []string{"2", "4", "1", "0"}
	got := strings.Split(strings.TrimSpace(stdout), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("heights mismatch (-want +got):\n%s", diff)
	}
}

func TestRunBatchReportsLine(t *testing.T) {
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(nil) })

	stdout, _, err := runCLI(t, "Q0\nX1\nQ0\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, polyomino.ErrNotImplemented)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, "2\n", stdout)
}

func TestRunFlags(t *testing.T) {
	t.Run("flags after the sequence", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "Q0,Q2", "-columns", "4", "-rows", "4")
		require.NoError(t, err)
		assert.Equal(t, "0\n", stdout)
	})

	t.Run("too many sequences", func(t *testing.T) {
		_, _, err := runCLI(t, "", "Q0", "Q1")
		assert.ErrorContains(t, err, "at most one sequence")
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		_, _, err := runCLI(t, "", "-rows", "0", "Q0")
		assert.ErrorContains(t, err, "rows must be positive")
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, stderr, err := runCLI(t, "", "-depth", "3", "Q0")
		assert.Error(t, err)
		assert.Contains(t, stderr, "usage: tetris")
		assert.Contains(t, stderr, "Shape codes: I, J, L, Q, S, T, Z")
	})
}

func TestRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rows": 4, "columns": 4}`), 0644))

	stdout, _, err := runCLI(t, "", "-config", path, "Q0,Q0")
	require.NoError(t, err)
	assert.Equal(t, "4\n", stdout)

	_, _, err = runCLI(t, "", "-config", path, "Q0,Q0,Q0")
	assert.ErrorIs(t, err, polyomino.ErrOutOfBounds)

	stdout, _, err = runCLI(t, "", "-config", path, "-rows", "10", "Q0,Q0,Q0")
	require.NoError(t, err)
	assert.Equal(t, "6\n", stdout, "flags override the config file")
}

func TestRunStats(t *testing.T) {
	stdout, stderr, err := runCLI(t, "", "-stats", "I0,I4,Q8")
	require.NoError(t, err)
	assert.Equal(t, "1\n", stdout)

	assert.Contains(t, stderr, "# Tetris Run Report")
	assert.Contains(t, stderr, "**Heights:** 1")
	assert.Contains(t, stderr, "**Rows Cleared:** 1")
	assert.Contains(t, stderr, "**Shapes Shifted:** 1")
	assert.Contains(t, stderr, "PlacementSystem: 3 runs")
	assert.Contains(t, stderr, "........##")
}

func TestRunPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.png")
	_, _, err := runCLI(t, "", "-png", path, "T0,T3")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
