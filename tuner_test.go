package atf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTunerBuilderWithSimulatedAnnealing(t *testing.T) {
	x := flatParam("x", 1, 2, 3, 4, 5)

	tuner := NewTuner().
		TuningParameters(G(x)).
		SearchTechnique(NewSimulatedAnnealing()).
		AbortCondition(Evaluations(20)).
		LogFile(filepath.Join(t.TempDir(), "sa_run.csv"))

	status, err := tuner.Tune(func(cfg *Configuration) (float64, bool) {
		tv, _ := cfg.Get("x")
		v, _ := tv.Value.AsInt64()
		return float64(v), true
	})
	require.NoError(t, err)
	assert.Equal(t, 20, status.Evaluated)
	assert.LessOrEqual(t, status.MinCost(), float64(5))
}

func TestTunerDefaultsToExhaustiveIndexWhenNoTechniqueSet(t *testing.T) {
	x := flatParam("x", 1, 2)
	tuner := NewTuner().
		TuningParameters(G(x)).
		AbortCondition(Evaluations(2)).
		LogFile(filepath.Join(t.TempDir(), "default_run.csv"))

	status, err := tuner.Tune(func(cfg *Configuration) (float64, bool) { return 0, true })
	require.NoError(t, err)
	assert.Equal(t, 2, status.Evaluated)
}

func TestTunerRequiresTuningParameters(t *testing.T) {
	tuner := NewTuner()
	_, err := tuner.Tune(func(cfg *Configuration) (float64, bool) { return 0, true })
	assert.ErrorIs(t, err, ErrInternal)
}

func TestTunerSpaceSize(t *testing.T) {
	x := flatParam("x", 1, 2, 3)
	y := flatParam("y", 1, 2)
	tuner := NewTuner().TuningParameters(G(x, y))

	size, err := tuner.SpaceSize()
	require.NoError(t, err)
	assert.Equal(t, "6", size.String())
}
