package atf

import (
	"math"
	"sync"
)

//////
// Const, vars, types.
//////

// gaussianProcess implements a thread-safe Gaussian Process model for
// regression over the unit-cube coordinate space (0,1]^D. It is used by
// BayesianOptimization to predict the cost of untested coordinates based on
// previously observed evaluations.
//
// Fields:
// - mu: RWMutex for thread-safe access to all fields
// - X: Slice of observed coordinate points (each point is a slice of float64)
// - Y: Slice of observed costs at each point
// - sigma: Kernel width parameter controlling the smoothness of interpolation
type gaussianProcess struct {
	mu sync.RWMutex

	X [][]float64
	Y []float64

	sigma float64
}

//////
// Methods.
//////

// RBFKernel implements the Radial Basis Function (Gaussian) kernel: it
// measures the similarity between two points in the input space, with
// similarity decreasing exponentially with distance.
//
//	k(x1, x2) = exp(-sum((x1 - x2)^2) / (2 * sigma^2))
//
// Panics if the input vectors have different lengths.
func (gp *gaussianProcess) RBFKernel(x1, x2 []float64) float64 {
	gp.mu.RLock()
	sigma := gp.sigma
	gp.mu.RUnlock()

	return rbfKernel(x1, x2, sigma)
}

// rbfKernel computes the RBF kernel for a given sigma without taking the
// lock, so Predict can use it while already holding the read lock.
func rbfKernel(x1, x2 []float64, sigma float64) float64 {
	if len(x1) != len(x2) {
		panic("atf: RBFKernel: input vectors must have the same length")
	}

	var sum float64
	for i := range x1 {
		diff := x1[i] - x2[i]
		sum += diff * diff
	}

	return math.Exp(-sum / (2 * sigma * sigma))
}

// Predict estimates the mean and variance of the cost at a given coordinate,
// based on previously observed points. Returns (0, 1) when no observations
// exist yet.
func (gp *gaussianProcess) Predict(x []float64) (mean, variance float64) {
	gp.mu.RLock()
	defer gp.mu.RUnlock()

	if len(gp.X) == 0 {
		return 0, 1
	}

	k := make([]float64, len(gp.X))
	for i := range gp.X {
		k[i] = rbfKernel(x, gp.X[i], gp.sigma)
	}

	var sum float64
	for i := range gp.X {
		sum += k[i] * gp.Y[i]
	}
	mean = sum / float64(len(gp.X))

	variance = 1.0
	for i := range gp.X {
		for j := range gp.X {
			variance -= k[i] * k[j] / float64(len(gp.X))
		}
	}

	return mean, variance
}

// Update adds a new observation (coordinate, cost) to the model. Copies x to
// avoid aliasing the caller's slice.
func (gp *gaussianProcess) Update(x []float64, y float64) {
	gp.mu.Lock()
	defer gp.mu.Unlock()

	newX := make([]float64, len(x))
	copy(newX, x)

	gp.X = append(gp.X, newX)
	gp.Y = append(gp.Y, y)
}

// SetSigma updates the kernel width. Larger values smooth interpolation
// across a wider neighborhood; smaller values weight nearby observations
// more heavily. No validation is performed; the caller must pass sigma > 0.
func (gp *gaussianProcess) SetSigma(sigma float64) {
	gp.mu.Lock()
	defer gp.mu.Unlock()
	gp.sigma = sigma
}

// GetSigma returns the current kernel width.
func (gp *gaussianProcess) GetSigma() float64 {
	gp.mu.RLock()
	defer gp.mu.RUnlock()
	return gp.sigma
}

//////
// Factory.
//////

// newGaussianProcess creates a model with sigma = 1.0, suitable for
// coordinates already normalized to the unit cube.
func newGaussianProcess() *gaussianProcess {
	return &gaussianProcess{sigma: 1.0}
}
