package atf

import (
	"math"
	"math/rand"
)

// PSOMovement is a movement functor: given a particle's state, the
// particle's own best position (localBest) and the global best, it returns
// the particle's next velocity.
type PSOMovement func(p *psoParticle, localBest, globalBest []float64, rng *rand.Rand) []float64

const (
	psoConstrictionChi = 0.7298
	psoConstrictionPhi = 2.05
)

// ConstrictionMovement implements the classic constriction-coefficient PSO
// update: v' = chi*(v + phi1*r1*(localBest-x) + phi2*r2*(globalBest-x)).
func ConstrictionMovement(p *psoParticle, localBest, globalBest []float64, rng *rand.Rand) []float64 {
	v := make([]float64, len(p.position))
	for i := range v {
		r1, r2 := rng.Float64(), rng.Float64()
		v[i] = psoConstrictionChi * (p.velocity[i] +
			psoConstrictionPhi*r1*(localBest[i]-p.position[i]) +
			psoConstrictionPhi*r2*(globalBest[i]-p.position[i]))
	}
	return v
}

// OpenTunerMovement mimics OpenTuner's PSO technique: a Gaussian-noise
// perturbation around a blend of local and global best, squashed through a
// sigmoid so velocities stay bounded regardless of how far position and
// best have diverged.
func OpenTunerMovement(p *psoParticle, localBest, globalBest []float64, rng *rand.Rand) []float64 {
	v := make([]float64, len(p.position))
	for i := range v {
		blend := 0.5*localBest[i] + 0.5*globalBest[i]
		noise := rng.NormFloat64() * 0.1
		raw := blend - p.position[i] + noise
		v[i] = 2/(1+math.Exp(-raw)) - 1
	}
	return v
}

// CLTuneMovement mimics CLTune's three-way choice: with equal probability,
// move toward the local best, the global best, or a random point.
func CLTuneMovement(p *psoParticle, localBest, globalBest []float64, rng *rand.Rand) []float64 {
	v := make([]float64, len(p.position))
	choice := rng.Intn(3)
	for i := range v {
		switch choice {
		case 0:
			v[i] = 0.5 * (localBest[i] - p.position[i])
		case 1:
			v[i] = 0.5 * (globalBest[i] - p.position[i])
		default:
			v[i] = rng.Float64()*2 - 1
		}
	}
	return v
}

type psoParticle struct {
	position     []float64
	velocity     []float64
	bestPosition []float64
	bestCost     float64
}

type psoSwarm struct {
	particles     []*psoParticle
	bestPosition  []float64
	bestCost      float64
	invalidCount  int
	reportedCount int
}

// ParticleSwarm implements N swarms x M particles PSO, defaulting to a
// single swarm of 30 particles. A swarm whose invalid-report rate exceeds
// 50% has all its particles' positions reset -- a rescue from converging
// entirely inside an infeasible region.
type ParticleSwarm struct {
	// NumSwarms and ParticlesPerSwarm default to 1 and 30.
	NumSwarms, ParticlesPerSwarm int
	// Movement selects the velocity-update functor (default ConstrictionMovement).
	Movement PSOMovement
	Rng      *rand.Rand

	d           int
	swarms      []*psoSwarm
	globalBest  []float64
	globalCost  float64
	pending     [][]float64
	pendingMeta []pendingParticle
}

type pendingParticle struct {
	swarm, particle int
}

// NewParticleSwarm builds a ParticleSwarm technique with a default topology
// (1 swarm x 30 particles) and the constriction-coefficient movement
// functor.
func NewParticleSwarm() *ParticleSwarm {
	return &ParticleSwarm{NumSwarms: 1, ParticlesPerSwarm: 30, Movement: ConstrictionMovement, Rng: defaultRNG()}
}

func (ps *ParticleSwarm) Initialize(dimensions int) {
	ps.d = dimensions
	if ps.NumSwarms <= 0 {
		ps.NumSwarms = 1
	}
	if ps.ParticlesPerSwarm <= 0 {
		ps.ParticlesPerSwarm = 30
	}
	if ps.Movement == nil {
		ps.Movement = ConstrictionMovement
	}
	if ps.Rng == nil {
		ps.Rng = defaultRNG()
	}
	ps.globalCost = maxCost
	ps.swarms = make([]*psoSwarm, ps.NumSwarms)
	for s := range ps.swarms {
		swarm := &psoSwarm{bestCost: maxCost}
		swarm.particles = make([]*psoParticle, ps.ParticlesPerSwarm)
		for i := range swarm.particles {
			pos := randomCoordinate(ps.Rng, dimensions)
			swarm.particles[i] = &psoParticle{
				position:     pos,
				velocity:     make([]float64, dimensions),
				bestPosition: append([]float64(nil), pos...),
				bestCost:     maxCost,
			}
		}
		ps.swarms[s] = swarm
	}
}

func (ps *ParticleSwarm) NextCoordinates() [][]float64 {
	batch := make([][]float64, 0, ps.NumSwarms*ps.ParticlesPerSwarm)
	meta := make([]pendingParticle, 0, cap(batch))
	for si, swarm := range ps.swarms {
		gBest := ps.globalBest
		if gBest == nil {
			gBest = swarm.particles[0].position
		}
		for pi, p := range swarm.particles {
			localBest := p.bestPosition
			v := ps.Movement(p, localBest, gBest, ps.Rng)
			next := make([]float64, ps.d)
			for j := range next {
				next[j] = clamp01(p.position[j] + v[j])
			}
			p.velocity = v
			batch = append(batch, next)
			meta = append(meta, pendingParticle{swarm: si, particle: pi})
		}
	}
	ps.pending = batch
	ps.pendingMeta = meta
	return batch
}

func (ps *ParticleSwarm) ReportCosts(results []CoordinateCost) {
	for i, r := range results {
		meta := ps.pendingMeta[i]
		swarm := ps.swarms[meta.swarm]
		p := swarm.particles[meta.particle]
		p.position = r.Coord

		swarm.reportedCount++
		if r.Cost >= maxCost {
			swarm.invalidCount++
		}

		if r.Cost < p.bestCost {
			p.bestCost = r.Cost
			p.bestPosition = append([]float64(nil), r.Coord...)
		}
		if r.Cost < swarm.bestCost {
			swarm.bestCost = r.Cost
			swarm.bestPosition = append([]float64(nil), r.Coord...)
		}
		if r.Cost < ps.globalCost {
			ps.globalCost = r.Cost
			ps.globalBest = append([]float64(nil), r.Coord...)
		}
	}

	for _, swarm := range ps.swarms {
		if swarm.reportedCount == 0 {
			continue
		}
		if float64(swarm.invalidCount)/float64(swarm.reportedCount) > 0.5 {
			ps.resetSwarm(swarm)
		}
	}
}

func (ps *ParticleSwarm) resetSwarm(swarm *psoSwarm) {
	for _, p := range swarm.particles {
		p.position = randomCoordinate(ps.Rng, ps.d)
		p.velocity = make([]float64, ps.d)
	}
	swarm.invalidCount = 0
	swarm.reportedCount = 0
}

func (ps *ParticleSwarm) Finalize() {}

// Best returns the best position and cost observed across every swarm.
func (ps *ParticleSwarm) Best() ([]float64, float64) { return ps.globalBest, ps.globalCost }
