package atf

import "math/rand"

// BayesianOptimization is a coordinate technique that models the cost
// surface with a Gaussian Process and proposes, each batch, the unit-cube
// candidate (among NumCandidates randomly drawn ones) that scores best under
// an AcquisitionFunc. It's a supplemental technique for problems where
// evaluations are expensive enough to justify a surrogate model.
type BayesianOptimization struct {
	// InitialSamples is how many purely-random candidates seed the model
	// before acquisition-guided proposals begin (default 10).
	InitialSamples int
	// NumCandidates controls how many random candidates are scored per
	// batch before picking the best (default 50).
	NumCandidates int
	// Acquisition picks which function scores candidates (default UCB).
	Acquisition AcquisitionFunc
	// AcqParams feeds Acquisition; BestSoFar is kept current automatically.
	AcqParams AcquisitionParams
	Rng       *rand.Rand

	gp         *gaussianProcess
	bestSoFar  float64
	pending    []float64
	dimensions int
}

// NewBayesianOptimization builds a BayesianOptimization technique with
// default settings: 10 initial random samples, UCB acquisition, beta=2.0,
// xi=0.01, 50 candidates per subsequent batch.
func NewBayesianOptimization() *BayesianOptimization {
	return &BayesianOptimization{
		InitialSamples: 10,
		NumCandidates:  50,
		Acquisition:    UCB,
		AcqParams:      AcquisitionParams{Beta: 2.0, Xi: 0.01},
		Rng:            defaultRNG(),
	}
}

func (b *BayesianOptimization) Initialize(dimensions int) {
	if b.InitialSamples <= 0 {
		b.InitialSamples = 10
	}
	if b.NumCandidates <= 0 {
		b.NumCandidates = 50
	}
	if b.Acquisition == nil {
		b.Acquisition = UCB
	}
	if b.Rng == nil {
		b.Rng = defaultRNG()
	}
	b.dimensions = dimensions
	b.gp = newGaussianProcess()
	b.bestSoFar = maxCost
}

func (b *BayesianOptimization) NextCoordinates() [][]float64 {
	if len(b.gp.X) < b.InitialSamples {
		b.pending = randomCoordinate(b.Rng, b.dimensions)
		return [][]float64{b.pending}
	}

	b.AcqParams.BestSoFar = b.bestSoFar
	best := randomCoordinate(b.Rng, b.dimensions)
	bestScore := b.scoreOf(best)
	for i := 1; i < b.NumCandidates; i++ {
		cand := randomCoordinate(b.Rng, b.dimensions)
		score := b.scoreOf(cand)
		if score < bestScore {
			bestScore = score
			best = cand
		}
	}
	b.pending = best
	return [][]float64{best}
}

func (b *BayesianOptimization) scoreOf(x []float64) float64 {
	mean, variance := b.gp.Predict(x)
	return b.Acquisition(mean, variance, b.AcqParams)
}

func (b *BayesianOptimization) ReportCosts(results []CoordinateCost) {
	for _, r := range results {
		b.gp.Update(r.Coord, r.Cost)
		if r.Cost < b.bestSoFar {
			b.bestSoFar = r.Cost
		}
	}
}

func (b *BayesianOptimization) Finalize() {}

func (b *BayesianOptimization) Best() (coord []float64, cost float64) {
	if len(b.gp.Y) == 0 {
		return nil, maxCost
	}
	bestIdx := 0
	for i := 1; i < len(b.gp.Y); i++ {
		if b.gp.Y[i] < b.gp.Y[bestIdx] {
			bestIdx = i
		}
	}
	return b.gp.X[bestIdx], b.gp.Y[bestIdx]
}
