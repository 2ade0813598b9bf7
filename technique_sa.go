package atf

import (
	"math"
	"math/rand"
)

// SimulatedAnnealing is a coordinate technique that perturbs one coordinate
// component at a time, alternating a "+" and "-" step, and accepts the best
// neighbor found in a batch with Metropolis-style probability governed by a
// temperature schedule that linearly cools over a fixed number of steps.
type SimulatedAnnealing struct {
	// TempHigh and TempLow bound the linear temperature schedule (default
	// 30 -> 0).
	TempHigh, TempLow float64
	// Steps is the number of schedule steps before the temperature wraps
	// back to TempHigh (default 100).
	Steps int
	Rng   *rand.Rand

	d           int
	t           int
	current     []float64
	currentCost float64
	best        []float64
	bestCost    float64
	pending     [][]float64
}

// NewSimulatedAnnealing builds a SimulatedAnnealing technique with the
// spec's default schedule (30 -> 0 over 100 steps).
func NewSimulatedAnnealing() *SimulatedAnnealing {
	return &SimulatedAnnealing{TempHigh: 30, TempLow: 0, Steps: 100, Rng: defaultRNG()}
}

func (s *SimulatedAnnealing) Initialize(dimensions int) {
	s.d = dimensions
	if s.Steps <= 0 {
		s.Steps = 100
	}
	if s.Rng == nil {
		s.Rng = defaultRNG()
	}
	s.current = randomCoordinate(s.Rng, dimensions)
	s.best = append([]float64(nil), s.current...)
	s.currentCost = maxCost
	s.bestCost = maxCost
	s.t = 0
}

// temperature linearly interpolates from TempHigh at t=0 to TempLow at
// t=Steps.
func (s *SimulatedAnnealing) temperature() float64 {
	frac := float64(s.t) / float64(s.Steps)
	return s.TempHigh + (s.TempLow-s.TempHigh)*frac
}

// stepSize implements sigma(t, T) = exp(-(20 + t/100) / (T + 1)).
func (s *SimulatedAnnealing) stepSize(temp float64) float64 {
	return math.Exp(-(20 + float64(s.t)/100) / (temp + 1))
}

// acceptance implements A(e, e', T) = 1 if e >= e' else exp(50*(e-e')/T),
// guarded against T == 0 and against an exponent extreme enough to
// underflow float64.
func acceptance(e, ePrime, temp float64) float64 {
	if ePrime <= e {
		return 1
	}
	if temp <= 0 {
		return 0
	}
	exponent := 50 * (e - ePrime) / temp
	if exponent < -700 {
		return 0
	}
	return math.Exp(exponent)
}

func (s *SimulatedAnnealing) NextCoordinates() [][]float64 {
	temp := s.temperature()
	sigma := s.stepSize(temp)
	batch := make([][]float64, 0, 2*s.d)
	for dim := 0; dim < s.d; dim++ {
		plus := append([]float64(nil), s.current...)
		plus[dim] = clamp01(plus[dim] + sigma*s.Rng.Float64())
		batch = append(batch, plus)

		minus := append([]float64(nil), s.current...)
		minus[dim] = clamp01(minus[dim] - sigma*s.Rng.Float64())
		batch = append(batch, minus)
	}
	s.pending = batch
	return batch
}

func (s *SimulatedAnnealing) ReportCosts(results []CoordinateCost) {
	if len(results) == 0 {
		return
	}
	bi := minCostIndex(results)
	candidate := results[bi]

	temp := s.temperature()
	if s.Rng.Float64() < acceptance(s.currentCost, candidate.Cost, temp) {
		s.current = append([]float64(nil), candidate.Coord...)
		s.currentCost = candidate.Cost
	}
	if candidate.Cost < s.bestCost {
		s.bestCost = candidate.Cost
		s.best = append([]float64(nil), candidate.Coord...)
	}

	s.t++
	if s.t >= s.Steps {
		s.t = 0
	}
}

func (s *SimulatedAnnealing) Finalize() {}

// Best returns the best coordinate and cost observed so far.
func (s *SimulatedAnnealing) Best() ([]float64, float64) { return s.best, s.bestCost }
