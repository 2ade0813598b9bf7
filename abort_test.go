package atf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluationsAbort(t *testing.T) {
	status := NewTuningStatus(time.Now())
	cond := Evaluations(3)
	assert.False(t, cond(status))

	for i := 0; i < 3; i++ {
		status.recordEvaluation(time.Now(), nil, float64(i), true)
	}
	assert.True(t, cond(status))
}

func TestTargetCostAbort(t *testing.T) {
	status := NewTuningStatus(time.Now())
	cond := TargetCost(5.0)
	assert.False(t, cond(status))

	status.recordEvaluation(time.Now(), nil, 10.0, true)
	assert.False(t, cond(status))

	status.recordEvaluation(time.Now(), nil, 4.0, true)
	assert.True(t, cond(status))
}

func TestSpeedupPlateauAbort(t *testing.T) {
	now := time.Now()
	start := now.Add(-3 * time.Hour)
	cutoffAgo := now.Add(-2 * time.Hour) // older than the 1h window below

	cond := SpeedupPlateau(time.Hour, 1.2)

	plateaued := NewTuningStatus(start)
	plateaued.recordEvaluation(cutoffAgo, nil, 10.0, true)
	plateaued.recordEvaluation(now, nil, 9.0, true) // speedup 10/9 ~= 1.11 < 1.2
	assert.True(t, cond(plateaued))

	stillImproving := NewTuningStatus(start)
	stillImproving.recordEvaluation(cutoffAgo, nil, 10.0, true)
	stillImproving.recordEvaluation(now, nil, 2.0, true) // speedup 10/2 = 5 >= 1.2
	assert.False(t, cond(stillImproving))
}

func TestAndOrAbortCombinators(t *testing.T) {
	status := NewTuningStatus(time.Now())
	always := func(*TuningStatus) bool { return true }
	never := func(*TuningStatus) bool { return false }

	assert.True(t, OrAbort(never, always)(status))
	assert.False(t, AndAbort(always, never)(status))
	assert.True(t, AndAbort(always, always)(status))
}
