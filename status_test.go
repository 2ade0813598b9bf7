package atf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCostImprovementHistory feeds a fixed cost sequence and checks that the
// history (beyond the maxCost sentinel) records only strict improvements.
func TestCostImprovementHistory(t *testing.T) {
	status := NewTuningStatus(time.Now())
	costs := []float64{5, 9, 3, 4, 2}
	for _, c := range costs {
		status.recordEvaluation(time.Now(), nil, c, true)
	}

	assert.Len(t, status.History, 4) // sentinel + 3 improvements
	var recorded []float64
	for _, e := range status.History[1:] {
		recorded = append(recorded, e.Cost)
	}
	assert.Equal(t, []float64{5, 3, 2}, recorded)
	assert.Equal(t, float64(2), status.MinCost())
}

func TestInvalidCostDoesNotCountAsValid(t *testing.T) {
	status := NewTuningStatus(time.Now())
	status.recordEvaluation(time.Now(), nil, maxCost, false)

	assert.Equal(t, 1, status.Invalid)
	assert.Equal(t, 0, status.Valid)
	assert.Equal(t, 1, status.Evaluated)
}
