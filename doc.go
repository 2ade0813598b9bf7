// Package atf provides a generic, constrained search-space auto-tuner: you
// declare TuningParameter ranges grouped into G-groups, build a
// SearchSpace over their admissible combinations, and let an
// ExplorationEngine propose Configurations for a cost function to minimize
// using one of several search techniques.
//
// # Features
//
//   - Constrained search spaces: parameters may depend on earlier
//     parameters via Predicate closures, compacted into per-group trees
//     during construction
//   - Dual addressing: every configuration is reachable both by a single
//     BigInt index and by a coordinate vector in (0,1]^D
//   - Seven core search techniques (five coordinate-space, two
//     index-space) plus two meta-techniques that select
//     among a set of children (round-robin, AUC-bandit), plus a
//     Gaussian-Process-based BayesianOptimization technique for expensive
//     evaluations
//   - Batch and stepping (online) tuning lifecycles
//   - CSV tuning log with one row per evaluation
//
// # Search techniques
//
// Coordinate-space: SimulatedAnnealing, PatternSearch, TorczonSimplex,
// DifferentialEvolution, ParticleSwarm, BayesianOptimization,
// RoundRobinCoordinate, AUCBanditCoordinate.
//
// Index-space: ExhaustiveIndex, RandomIndex, RoundRobinIndex, AUCBanditIndex.
//
// # Basic usage
//
//	blockSizeRange, _ := NewIntInterval(0, 10, 1, Pow2Int64)
//	blockSize := NewTuningParameter("block_size", blockSizeRange, nil)
//	status, err := NewTuner().
//	    TuningParameters(G(blockSize)).
//	    SearchTechnique(NewSimulatedAnnealing()).
//	    Tune(func(cfg *Configuration) (float64, bool) {
//	        return benchmark(cfg), true
//	    })
//
// # Stepping mode
//
// When the host (not the engine) controls the evaluation loop:
//
//	tuner := NewTuner().TuningParameters(G(blockSize)).SearchIndexTechnique(NewExhaustiveIndex())
//	for i := 0; i < n; i++ {
//	    cfg, err := tuner.GetConfiguration()
//	    cost := benchmark(cfg)
//	    tuner.ReportCost(cfg, cost, true)
//	}
//	tuner.FinishStepping()
package atf
