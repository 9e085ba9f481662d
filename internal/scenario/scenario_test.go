package scenario

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/penguin/internal/creature"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestParseSteps(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"molt", []string{"molt"}},
		{"molt,swim", []string{"molt", "swim"}},
		{" Molt , SWIM ,, molt ", []string{"molt", "swim", "molt"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSteps(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSteps_Unknown(t *testing.T) {
	_, err := ParseSteps("molt,fly")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStep)
	assert.Contains(t, err.Error(), "fly")
}

func TestLookup(t *testing.T) {
	s, err := Lookup("swim")
	require.NoError(t, err)
	assert.Equal(t, "swim", s.Name())

	s, err = Lookup("MOLT")
	require.NoError(t, err)
	assert.Equal(t, "molt", s.Name())
}

func TestSteps_Apply(t *testing.T) {
	p := creature.New(10)

	MoltStep{}.Apply(p)
	assert.Equal(t, 6, p.Feathers())
	assert.Empty(t, p.Location())

	SwimStep{}.Apply(p)
	assert.Equal(t, creature.InWater, p.Location())
	assert.Equal(t, 6, p.Feathers())
}

func TestParse(t *testing.T) {
	sc, err := Parse([]byte("feathers: 10\nstrict: true\nsteps: [molt, swim]\n"))
	require.NoError(t, err)
	assert.Equal(t, Scenario{Feathers: 10, Strict: true, Steps: []string{"molt", "swim"}}, sc)
}

func TestParse_UnknownStep(t *testing.T) {
	_, err := Parse([]byte("feathers: 1\nsteps: [dive]\n"))
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("feathers: [oops"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding scenario")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feathers: 2\nsteps:\n  - molt\n"), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, sc.Feathers)
	assert.Equal(t, []string{"molt"}, sc.Steps)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		sc       Scenario
		expected State
	}{
		{
			name:     "ten feathers molt once",
			sc:       Scenario{Feathers: 10, Steps: []string{"molt"}},
			expected: State{Location: "", Feathers: 6, Steps: 1},
		},
		{
			name:     "two feathers goes negative",
			sc:       Scenario{Feathers: 2, Steps: []string{"molt"}},
			expected: State{Location: "", Feathers: -2, Steps: 1},
		},
		{
			name:     "swim only",
			sc:       Scenario{Feathers: 7, Steps: []string{"swim"}},
			expected: State{Location: creature.InWater, Feathers: 7, Steps: 1},
		},
		{
			name:     "no steps",
			sc:       Scenario{Feathers: 3},
			expected: State{Feathers: 3},
		},
		{
			name:     "negative allowed when not strict",
			sc:       Scenario{Feathers: -1, Steps: []string{"swim", "molt"}},
			expected: State{Location: creature.InWater, Feathers: -5, Steps: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(context.Background(), tt.sc, testLogger())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRun_StrictRejectsNegative(t *testing.T) {
	_, err := Run(context.Background(), Scenario{Feathers: -1, Strict: true}, testLogger())
	assert.ErrorIs(t, err, creature.ErrNegativeFeathers)
}

func TestRun_UnknownStep(t *testing.T) {
	_, err := Run(context.Background(), Scenario{Feathers: 1, Steps: []string{"fly"}}, testLogger())
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := Run(ctx, Scenario{Feathers: 10, Steps: []string{"molt", "swim"}}, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, State{Feathers: 10}, got)
}
