package atf

import (
	"math"
	"math/rand"
)

const (
	banditDefaultWindow = 500
	banditExploreC       = 0.05
)

type banditEntry struct {
	tech     int
	improved bool
}

// aucBanditSelector selects among n children by UCB on the area under the
// improvement curve within a sliding window of past uses. Recomputing
// per-child statistics by rescanning the (bounded) window on every push is
// simpler than maintaining running counters incrementally and is cheap at
// the default window size of 500.
type aucBanditSelector struct {
	n       int
	window  int
	c       float64
	history []banditEntry

	uses   []float64
	decay  []float64
	rawAUC []int
	rng    *rand.Rand
}

func newAUCBanditSelector(n, window int, c float64) *aucBanditSelector {
	if window <= 0 {
		window = banditDefaultWindow
	}
	if c <= 0 {
		c = banditExploreC
	}
	return &aucBanditSelector{
		n: n, window: window, c: c,
		uses: make([]float64, n), decay: make([]float64, n), rawAUC: make([]int, n),
		rng: defaultRNG(),
	}
}

func (s *aucBanditSelector) recompute() {
	for i := range s.uses {
		s.uses[i] = 0
		s.decay[i] = 0
		s.rawAUC[i] = 0
	}
	for pos, e := range s.history {
		s.uses[e.tech]++
		if e.improved {
			s.decay[e.tech]++
			s.rawAUC[e.tech] += pos + 1
		}
	}
}

func (s *aucBanditSelector) score(k int) float64 {
	uses := s.uses[k]
	if uses == 0 {
		return math.Inf(1)
	}
	auc := 2 * float64(s.rawAUC[k]) / (uses * (uses + 1))
	explore := math.Sqrt(2 * log2(float64(len(s.history))) / uses)
	return auc + s.c*explore
}

func log2(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log2(x)
}

func (s *aucBanditSelector) choose() int {
	best := 0
	bestScore := s.score(0)
	ties := []int{0}
	for k := 1; k < s.n; k++ {
		sc := s.score(k)
		if sc > bestScore {
			bestScore = sc
			best = k
			ties = []int{k}
		} else if sc == bestScore {
			ties = append(ties, k)
		}
	}
	if len(ties) > 1 {
		best = ties[s.rng.Intn(len(ties))]
	}
	return best
}

func (s *aucBanditSelector) record(index int, improved bool) {
	s.history = append(s.history, banditEntry{tech: index, improved: improved})
	if len(s.history) > s.window {
		s.history = s.history[1:]
	}
	s.recompute()
}

// AUCBanditCoordinate is the coordinate-technique AUC-bandit meta-technique:
// it selects among its children by UCB on their area-under-the-improvement
// curve within a sliding window, biasing future batches toward whichever
// child has recently produced the most and most-recent improvements.
type AUCBanditCoordinate struct {
	Children []CoordinateTechnique
	// Window and C default to 500 and 0.05.
	Window int
	C      float64

	sel        *aucBanditSelector
	current    int
	runningMin float64
}

// NewAUCBanditCoordinate builds an AUC-bandit meta-technique over the given
// child coordinate techniques.
func NewAUCBanditCoordinate(children ...CoordinateTechnique) *AUCBanditCoordinate {
	return &AUCBanditCoordinate{Children: children}
}

func (a *AUCBanditCoordinate) Initialize(dimensions int) {
	a.sel = newAUCBanditSelector(len(a.Children), a.Window, a.C)
	a.runningMin = maxCost
	for _, c := range a.Children {
		c.Initialize(dimensions)
	}
}

func (a *AUCBanditCoordinate) NextCoordinates() [][]float64 {
	a.current = a.sel.choose()
	return a.Children[a.current].NextCoordinates()
}

func (a *AUCBanditCoordinate) ReportCosts(results []CoordinateCost) {
	a.Children[a.current].ReportCosts(results)
	improved := false
	for _, r := range results {
		if r.Cost < a.runningMin {
			a.runningMin = r.Cost
			improved = true
		}
	}
	a.sel.record(a.current, improved)
}

func (a *AUCBanditCoordinate) Finalize() {
	for _, c := range a.Children {
		c.Finalize()
	}
}

// AUCBanditIndex is the index-technique counterpart of AUCBanditCoordinate.
type AUCBanditIndex struct {
	Children []IndexTechnique
	Window   int
	C        float64

	sel        *aucBanditSelector
	current    int
	runningMin float64
}

// NewAUCBanditIndex builds an AUC-bandit meta-technique over the given
// child index techniques.
func NewAUCBanditIndex(children ...IndexTechnique) *AUCBanditIndex {
	return &AUCBanditIndex{Children: children}
}

func (a *AUCBanditIndex) Initialize(size BigInt) {
	a.sel = newAUCBanditSelector(len(a.Children), a.Window, a.C)
	a.runningMin = maxCost
	for _, c := range a.Children {
		c.Initialize(size)
	}
}

func (a *AUCBanditIndex) NextIndices() []BigInt {
	a.current = a.sel.choose()
	return a.Children[a.current].NextIndices()
}

func (a *AUCBanditIndex) ReportCosts(results []IndexCost) {
	a.Children[a.current].ReportCosts(results)
	improved := false
	for _, r := range results {
		if r.Cost < a.runningMin {
			a.runningMin = r.Cost
			improved = true
		}
	}
	a.sel.record(a.current, improved)
}

func (a *AUCBanditIndex) Finalize() {
	for _, c := range a.Children {
		c.Finalize()
	}
}
