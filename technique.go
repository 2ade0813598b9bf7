package atf

import (
	"math"
	"math/rand"
)

// CoordinateCost pairs a proposed coordinate with its measured cost. Slices
// of these are handed back to a CoordinateTechnique in ReportCosts, in the
// same order the corresponding NextCoordinates batch was returned in (the
// engine consumes a batch strictly in proposal order before reporting it
// back as a whole -- see ExplorationEngine). Using an ordered slice instead
// of a map keyed by the coordinate vector sidesteps Go's "slices are not
// comparable" restriction while preserving the batch-propose /
// batch-report contract.
type CoordinateCost struct {
	Coord []float64
	Cost  float64
}

// CoordinateTechnique is the continuous-space search protocol: propose
// vectors in (0,1]^D, receive their measured costs as a batch, repeat.
type CoordinateTechnique interface {
	// Initialize is called once, before the first NextCoordinates, with the
	// total number of declared parameters.
	Initialize(dimensions int)

	// NextCoordinates returns the next batch of candidate coordinates, each
	// in (0,1]^D. A technique may return more than one coordinate to
	// propose a coupled neighborhood (e.g. a simplex).
	NextCoordinates() [][]float64

	// ReportCosts delivers the measured cost for every coordinate in the
	// last NextCoordinates batch, in the same order.
	ReportCosts(results []CoordinateCost)

	// Finalize is called once the engine's loop exits, win or lose.
	Finalize()
}

// IndexCost pairs a proposed index with its measured cost, mirroring
// CoordinateCost for the discrete-space protocol.
type IndexCost struct {
	Index BigInt
	Cost  float64
}

// IndexTechnique is the discrete-space search protocol: propose indices in
// [0, size), receive their measured costs as a batch, repeat.
type IndexTechnique interface {
	// Initialize is called once with the total search-space size.
	Initialize(size BigInt)

	// NextIndices returns the next batch of candidate indices.
	NextIndices() []BigInt

	// ReportCosts delivers the measured cost for every index in the last
	// NextIndices batch, in the same order.
	ReportCosts(results []IndexCost)

	Finalize()
}

// maxCost is the sentinel used throughout the engine and techniques to mean
// "this configuration failed" -- the largest finite float64.
const maxCost = math.MaxFloat64

func defaultRNG() *rand.Rand { return rand.New(rand.NewSource(1)) }

func clamp01(x float64) float64 {
	if x <= 0 {
		return smallestPositive
	}
	if x > 1 {
		return 1
	}
	return x
}

const smallestPositive = 1e-12

func randomCoordinate(rng *rand.Rand, d int) []float64 {
	c := make([]float64, d)
	for i := range c {
		c[i] = clamp01(rng.Float64())
	}
	return c
}

func minCostIndex(results []CoordinateCost) int {
	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].Cost < results[best].Cost {
			best = i
		}
	}
	return best
}
