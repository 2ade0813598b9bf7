package atf

// roundRobinSelector cycles through child indices in order, one per batch.
type roundRobinSelector struct {
	n    int
	next int
}

func newRoundRobinSelector(n int) *roundRobinSelector { return &roundRobinSelector{n: n} }

func (r *roundRobinSelector) choose() int {
	i := r.next
	r.next = (r.next + 1) % r.n
	return i
}

func (r *roundRobinSelector) record(index int, improved bool) {}

// RoundRobinCoordinate is a meta-technique that forwards each batch to the
// next child coordinate technique, cyclically.
type RoundRobinCoordinate struct {
	Children []CoordinateTechnique

	sel     *roundRobinSelector
	current int
}

// NewRoundRobinCoordinate builds a round-robin meta-technique over the
// given child coordinate techniques.
func NewRoundRobinCoordinate(children ...CoordinateTechnique) *RoundRobinCoordinate {
	return &RoundRobinCoordinate{Children: children}
}

func (r *RoundRobinCoordinate) Initialize(dimensions int) {
	r.sel = newRoundRobinSelector(len(r.Children))
	for _, c := range r.Children {
		c.Initialize(dimensions)
	}
}

func (r *RoundRobinCoordinate) NextCoordinates() [][]float64 {
	r.current = r.sel.choose()
	return r.Children[r.current].NextCoordinates()
}

func (r *RoundRobinCoordinate) ReportCosts(results []CoordinateCost) {
	r.Children[r.current].ReportCosts(results)
}

func (r *RoundRobinCoordinate) Finalize() {
	for _, c := range r.Children {
		c.Finalize()
	}
}

// RoundRobinIndex is the index-technique counterpart of RoundRobinCoordinate.
type RoundRobinIndex struct {
	Children []IndexTechnique

	sel     *roundRobinSelector
	current int
}

// NewRoundRobinIndex builds a round-robin meta-technique over the given
// child index techniques.
func NewRoundRobinIndex(children ...IndexTechnique) *RoundRobinIndex {
	return &RoundRobinIndex{Children: children}
}

func (r *RoundRobinIndex) Initialize(size BigInt) {
	r.sel = newRoundRobinSelector(len(r.Children))
	for _, c := range r.Children {
		c.Initialize(size)
	}
}

func (r *RoundRobinIndex) NextIndices() []BigInt {
	r.current = r.sel.choose()
	return r.Children[r.current].NextIndices()
}

func (r *RoundRobinIndex) ReportCosts(results []IndexCost) {
	r.Children[r.current].ReportCosts(results)
}

func (r *RoundRobinIndex) Finalize() {
	for _, c := range r.Children {
		c.Finalize()
	}
}
