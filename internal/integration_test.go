package internal_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/penguin/internal/analyzer"
	"github.com/olehluchkiv/penguin/internal/creature"
	"github.com/olehluchkiv/penguin/internal/diagram"
	"github.com/olehluchkiv/penguin/internal/scenario"
)

func testdataDir(name string) string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// We're in internal/, go up one level
	return filepath.Join(filepath.Dir(wd), "testdata", name)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestEndToEnd_Diagram(t *testing.T) {
	ctx := context.Background()
	opts := analyzer.Options{MaxMethods: analyzer.DefaultMaxMethods}

	dir, err := analyzer.ModuleRoot(filepath.Join(testdataDir("aviary"), "pond"))
	require.NoError(t, err)
	assert.Equal(t, testdataDir("aviary"), dir)

	result, err := analyzer.Analyze(ctx, dir, opts, testLogger())
	require.NoError(t, err)
	result = analyzer.Filter(result, opts)

	got := diagram.GenerateMermaid(result, diagram.Options{})

	assert.Contains(t, got, "classDiagram")
	assert.Contains(t, got, "<<interface>>")
	assert.Contains(t, got, "aviary_Penguin ..|> aviary_Swimmer")
	assert.Contains(t, got, "aviary_Penguin ..|> aviary_Featherer")
	assert.Contains(t, got, "aviary_Fish --|> aviary_Swimmer")
	assert.Contains(t, got, "aviary_Robin --|> aviary_Featherer")
	assert.Contains(t, got, "aviary_Duck --|> aviary_Bird")
	assert.Contains(t, got, "pond_Frog --|> aviary_Swimmer")
	assert.Contains(t, got, `cssClass "aviary_Bird" wideStyle`)
	assert.Contains(t, got, `cssClass "aviary_Swimmer" contractStyle`)
	assert.Contains(t, got, "+Sing() string")

	assert.NotContains(t, got, "aviary_Rock")
	assert.NotContains(t, got, "aviary_swimmer")
	assert.NotContains(t, got, "aviary_Penguin ..|> aviary_Bird")
	assert.NotContains(t, got, "aviary_Fish --|> aviary_Featherer")
}

func TestEndToEnd_Scenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feathers: 10\nsteps: [molt, swim]\n"), 0o644))

	sc, err := scenario.Load(path)
	require.NoError(t, err)

	state, err := scenario.Run(context.Background(), sc, testLogger())
	require.NoError(t, err)
	assert.Equal(t, scenario.State{Location: creature.InWater, Feathers: 6, Steps: 2}, state)
}
