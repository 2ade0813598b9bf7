package atf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinCoordinateCyclesChildren(t *testing.T) {
	var calls []int
	mk := func(id int) CoordinateTechnique {
		return &recordingCoordTechnique{id: id, calls: &calls}
	}
	rr := NewRoundRobinCoordinate(mk(0), mk(1), mk(2))
	rr.Initialize(2)

	for i := 0; i < 6; i++ {
		rr.NextCoordinates()
		rr.ReportCosts(nil)
	}
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, calls)
}

type recordingCoordTechnique struct {
	id    int
	calls *[]int
}

func (r *recordingCoordTechnique) Initialize(int) {}
func (r *recordingCoordTechnique) NextCoordinates() [][]float64 {
	*r.calls = append(*r.calls, r.id)
	return [][]float64{{0.5}}
}
func (r *recordingCoordTechnique) ReportCosts([]CoordinateCost) {}
func (r *recordingCoordTechnique) Finalize()                    {}

func TestAUCBanditPrefersImprovingChild(t *testing.T) {
	good := &scriptedCoordTechnique{start: 10, step: -0.5, floor: 0.1}
	bad := &scriptedCoordTechnique{start: 10, step: 0}

	bandit := NewAUCBanditCoordinate(good, bad)
	bandit.Window = 30
	bandit.Initialize(1)

	goodPicks := 0
	for i := 0; i < 30; i++ {
		bandit.NextCoordinates()
		chosen := bandit.current
		var cost float64
		if chosen == 0 {
			cost = good.next()
			goodPicks++
		} else {
			cost = bad.next()
		}
		bandit.ReportCosts([]CoordinateCost{{Coord: []float64{0.1}, Cost: cost}})
	}
	assert.Greater(t, goodPicks, 15)
}

// scriptedCoordTechnique produces a cost sequence starting at start and
// moving by step each call (clamped at floor), for exercising meta-technique
// selection logic without a real optimizer underneath.
type scriptedCoordTechnique struct {
	start, step, floor float64
	cur                float64
	started            bool
}

func (s *scriptedCoordTechnique) next() float64 {
	if !s.started {
		s.cur = s.start
		s.started = true
	} else {
		s.cur += s.step
		if s.cur < s.floor {
			s.cur = s.floor
		}
	}
	return s.cur
}

func (s *scriptedCoordTechnique) Initialize(int)                      {}
func (s *scriptedCoordTechnique) NextCoordinates() [][]float64        { return [][]float64{{0.5}} }
func (s *scriptedCoordTechnique) ReportCosts(results []CoordinateCost) {}
func (s *scriptedCoordTechnique) Finalize()                           {}

func TestExhaustiveIndexWrapsAround(t *testing.T) {
	e := NewExhaustiveIndex()
	e.Initialize(NewBigIntFromInt64(3))

	var seen []string
	for i := 0; i < 5; i++ {
		idx := e.NextIndices()[0]
		seen = append(seen, idx.String())
	}
	assert.Equal(t, []string{"0", "1", "2", "0", "1"}, seen)
}

func TestBayesianOptimizationLearnsTowardLowerCost(t *testing.T) {
	bo := NewBayesianOptimization()
	bo.InitialSamples = 5
	bo.NumCandidates = 20
	bo.Initialize(1)

	target := 0.2
	for i := 0; i < 40; i++ {
		batch := bo.NextCoordinates()
		results := make([]CoordinateCost, len(batch))
		for j, c := range batch {
			cost := (c[0] - target) * (c[0] - target)
			results[j] = CoordinateCost{Coord: c, Cost: cost}
		}
		bo.ReportCosts(results)
	}

	coord, cost := bo.Best()
	assert.NotNil(t, coord)
	assert.Less(t, cost, 0.5)
}
