package atf

// PatternSearch implements Hooke-Jeeves pattern search: probe every
// parameter +/- the current step from a base point, keep whichever
// direction improved, and if the full probing pass improved, attempt a
// pattern move (extrapolating past the improvement); otherwise halve the
// step and probe again from the same base.
type PatternSearch struct {
	// InitialStep is the starting per-component probe distance (default 0.1).
	InitialStep float64

	d        int
	step     float64
	base     []float64 // point probing starts from
	baseCost float64
	state    psState
	pending  [][]float64

	exploratory         []float64
	exploratoryCost     float64
	pendingPatternPoint []float64
}

type psState int

const (
	psProbe psState = iota
	psPattern
)

// NewPatternSearch builds a PatternSearch technique with a default initial
// step of 0.1.
func NewPatternSearch() *PatternSearch {
	return &PatternSearch{InitialStep: 0.1}
}

func (p *PatternSearch) Initialize(dimensions int) {
	p.d = dimensions
	if p.InitialStep <= 0 {
		p.InitialStep = 0.1
	}
	p.step = p.InitialStep
	rng := defaultRNG()
	p.base = randomCoordinate(rng, dimensions)
	p.baseCost = maxCost
	p.state = psProbe
}

func (p *PatternSearch) NextCoordinates() [][]float64 {
	switch p.state {
	case psPattern:
		p.pending = [][]float64{p.pendingPatternPoint}
		return p.pending
	default:
		batch := make([][]float64, 0, 2*p.d+1)
		batch = append(batch, append([]float64(nil), p.base...))
		for dim := 0; dim < p.d; dim++ {
			plus := append([]float64(nil), p.base...)
			plus[dim] = clamp01(plus[dim] + p.step)
			batch = append(batch, plus)

			minus := append([]float64(nil), p.base...)
			minus[dim] = clamp01(minus[dim] - p.step)
			batch = append(batch, minus)
		}
		p.pending = batch
		return batch
	}
}

func (p *PatternSearch) ReportCosts(results []CoordinateCost) {
	switch p.state {
	case psPattern:
		p.reportPattern(results)
	default:
		p.reportProbe(results)
	}
}

func (p *PatternSearch) reportProbe(results []CoordinateCost) {
	baseCost := results[0].Cost
	if p.baseCost == maxCost {
		p.baseCost = baseCost
	}
	exploratory := append([]float64(nil), p.base...)
	exploratoryCost := p.baseCost
	improved := false
	for dim := 0; dim < p.d; dim++ {
		plusResult := results[1+2*dim]
		minusResult := results[2+2*dim]
		if plusResult.Cost < exploratoryCost {
			exploratory[dim] = plusResult.Coord[dim]
			exploratoryCost = plusResult.Cost
			improved = true
		}
		if minusResult.Cost < exploratoryCost {
			exploratory[dim] = minusResult.Coord[dim]
			exploratoryCost = minusResult.Cost
			improved = true
		}
	}
	if !improved {
		p.step /= 2
		return
	}
	pattern := make([]float64, p.d)
	for i := range pattern {
		pattern[i] = clamp01(exploratory[i] + (exploratory[i] - p.base[i]))
	}
	p.exploratory = exploratory
	p.exploratoryCost = exploratoryCost
	p.pendingPatternPoint = pattern
	p.state = psPattern
}

func (p *PatternSearch) reportPattern(results []CoordinateCost) {
	patternCost := results[0].Cost
	if patternCost < p.exploratoryCost {
		p.base = p.pendingPatternPoint
		p.baseCost = patternCost
	} else {
		p.base = p.exploratory
		p.baseCost = p.exploratoryCost
	}
	p.state = psProbe
}

func (p *PatternSearch) Finalize() {}

// Best returns the best point discovered so far (the current base).
func (p *PatternSearch) Best() ([]float64, float64) { return p.base, p.baseCost }
