package atf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallSpace(t *testing.T) *SearchSpace {
	t.Helper()
	x := flatParam("x", 1, 2, 3)
	ss, err := NewSearchSpace(G(x))
	require.NoError(t, err)
	return ss
}

func TestTunerBatchExhaustsSmallSpace(t *testing.T) {
	ss := smallSpace(t)
	tuner := &Tuner{}
	tuner.engine.Space = ss
	tuner.engine.LogFilePath = filepath.Join(t.TempDir(), "run.csv")
	tuner.SearchIndexTechnique(NewExhaustiveIndex())
	tuner.AbortCondition(Evaluations(3))

	seen := map[int64]bool{}
	status, err := tuner.Tune(func(cfg *Configuration) (float64, bool) {
		tv, ok := cfg.Get("x")
		require.True(t, ok)
		x, _ := tv.Value.AsInt64()
		seen[x] = true
		return float64(x), true
	})
	require.NoError(t, err)
	assert.Equal(t, 3, status.Evaluated)
	assert.Equal(t, 3, len(seen))
	assert.Equal(t, float64(1), status.MinCost())
}

func TestTunerInvalidCostRecordedAsSentinel(t *testing.T) {
	ss := smallSpace(t)
	tuner := &Tuner{}
	tuner.engine.Space = ss
	tuner.engine.LogFilePath = filepath.Join(t.TempDir(), "run.csv")
	tuner.SearchIndexTechnique(NewExhaustiveIndex())
	tuner.AbortCondition(Evaluations(1))

	status, err := tuner.Tune(func(cfg *Configuration) (float64, bool) {
		return 0, false
	})
	require.NoError(t, err)
	assert.Equal(t, 1, status.Invalid)
	assert.Equal(t, maxCost, status.MinCost())
}

func TestTunerAbortOnErrorStopsImmediately(t *testing.T) {
	ss := smallSpace(t)
	tuner := &Tuner{}
	tuner.engine.Space = ss
	tuner.engine.LogFilePath = filepath.Join(t.TempDir(), "run.csv")
	tuner.SearchIndexTechnique(NewExhaustiveIndex())
	tuner.AbortOnError(true)
	tuner.AbortCondition(Evaluations(100))

	calls := 0
	_, err := tuner.Tune(func(cfg *Configuration) (float64, bool) {
		calls++
		return 0, false
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, 1, calls)
}

func TestSteppingProtocolViolation(t *testing.T) {
	ss := smallSpace(t)
	tuner := &Tuner{}
	tuner.engine.Space = ss
	tuner.engine.LogFilePath = filepath.Join(t.TempDir(), "run.csv")
	tuner.SearchIndexTechnique(NewExhaustiveIndex())

	cfg, err := tuner.GetConfiguration()
	require.NoError(t, err)

	_, err = tuner.GetConfiguration()
	assert.ErrorIs(t, err, ErrProtocol)

	require.NoError(t, tuner.ReportCost(cfg, 1.0, true))

	_, err = tuner.Tune(func(cfg *Configuration) (float64, bool) { return 0, true })
	assert.ErrorIs(t, err, ErrProtocol)

	tuner.FinishStepping()
}

func TestMakeStepRecordsHistory(t *testing.T) {
	ss := smallSpace(t)
	tuner := &Tuner{}
	tuner.engine.Space = ss
	tuner.engine.LogFilePath = filepath.Join(t.TempDir(), "run.csv")
	tuner.SearchIndexTechnique(NewExhaustiveIndex())

	for i := 0; i < 3; i++ {
		_, err := tuner.MakeStep(func(cfg *Configuration) (float64, bool) {
			tv, _ := cfg.Get("x")
			x, _ := tv.Value.AsInt64()
			return float64(x), true
		})
		require.NoError(t, err)
	}
	tuner.FinishStepping()

	status := tuner.GetTuningStatus()
	assert.Equal(t, 3, status.Evaluated)
	assert.Equal(t, float64(1), status.MinCost())
	assert.True(t, status.EvaluationsRequiredToFindBest() <= 3)
}
