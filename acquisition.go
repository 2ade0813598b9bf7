package atf

import "math"

//////
// Acquisition functions for BayesianOptimization. Each helps decide which
// coordinate to evaluate next by balancing exploration (trying uncertain
// areas) and exploitation (refining known-good areas). All treat lower
// predicted cost as better, matching the engine's minimize convention.
//////

// AcquisitionParams bundles the parameters an AcquisitionFunc may need.
type AcquisitionParams struct {
	// BestSoFar is the lowest cost observed so far; used by PI and EI.
	BestSoFar float64
	// Beta controls UCB's exploration weight (higher = more exploration).
	Beta float64
	// Xi is the minimum-improvement margin used by PI and EI.
	Xi float64
	// RandomState is required by ThompsonSampling.
	RandomState interface{ NormFloat64() float64 }
}

// AcquisitionFunc scores a predicted (mean, variance) pair; BayesianOptimization
// proposes the candidate with the lowest score next.
type AcquisitionFunc func(mean, variance float64, params AcquisitionParams) float64

// UCB (Upper Confidence Bound) subtracts an uncertainty bonus from the mean,
// favoring points that are either predicted-good or poorly understood.
func UCB(mean, variance float64, params AcquisitionParams) float64 {
	return mean - params.Beta*math.Sqrt(variance)
}

// ProbabilityOfImprovement scores a point by how likely it is to beat
// BestSoFar by at least Xi, under a normal-distribution assumption. The
// raw probability is highest where improvement is most likely, so it is
// negated here to match every other AcquisitionFunc's "lower is better"
// convention (BayesianOptimization always picks the minimum score).
func ProbabilityOfImprovement(mean, variance float64, params AcquisitionParams) float64 {
	z := (params.BestSoFar - mean - params.Xi) / math.Sqrt(variance)
	return -normalCDF(z)
}

// ExpectedImprovement combines the probability of improvement with its
// expected magnitude; usually the best general-purpose default. Negated for
// the same reason as ProbabilityOfImprovement.
func ExpectedImprovement(mean, variance float64, params AcquisitionParams) float64 {
	sigma := math.Sqrt(variance)
	z := (params.BestSoFar - mean - params.Xi) / sigma
	return -((params.BestSoFar-mean-params.Xi)*normalCDF(z) + sigma*normalPDF(z))
}

// ThompsonSampling draws a random sample from the posterior at this point,
// letting randomness itself balance exploration and exploitation.
// RandomState must be set in params.
func ThompsonSampling(mean, variance float64, params AcquisitionParams) float64 {
	return mean + math.Sqrt(variance)*params.RandomState.NormFloat64()
}

func normalCDF(x float64) float64 { return 0.5 * (1.0 + math.Erf(x/math.Sqrt2)) }

func normalPDF(x float64) float64 { return math.Exp(-x*x/2.0) / math.Sqrt(2.0*math.Pi) }
