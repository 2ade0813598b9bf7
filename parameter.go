package atf

// TuningParameter is a named axis of the search space: a Range of candidate
// values filtered by an admissibility Predicate. The parameter also owns a
// small piece of "live storage" -- its currently-bound Value during tree
// construction and during configuration application -- so that later
// parameters' predicates, and the user's cost callable, can read earlier
// parameters' bindings by holding a pointer to the TuningParameter itself.
type TuningParameter struct {
	// Name uniquely identifies the parameter within a Configuration.
	Name string

	// Rng is the (possibly huge) candidate Range.
	Rng Range

	// Pred filters Rng's output. A nil Pred admits every element.
	Pred Predicate

	current    Value
	hasCurrent bool
}

// NewTuningParameter declares a parameter. pred may be nil to admit every
// value in rng.
func NewTuningParameter(name string, rng Range, pred Predicate) *TuningParameter {
	return &TuningParameter{Name: name, Rng: rng, Pred: pred}
}

// Current returns the parameter's live binding and whether one has been set
// yet (it has not, before the first tree-construction pass or configuration
// application touches it).
func (p *TuningParameter) Current() (Value, bool) {
	return p.current, p.hasCurrent
}

// setCurrent updates live storage. Called by tree construction while
// walking a root-to-leaf path, and by Configuration.Apply when a caller
// addresses a concrete configuration directly (e.g. via GetByIndex).
func (p *TuningParameter) setCurrent(v Value) {
	p.current = v
	p.hasCurrent = true
}

// admits reports whether v passes this parameter's predicate.
func (p *TuningParameter) admits(v Value) bool {
	if p.Pred == nil {
		return true
	}
	return p.Pred(v)
}

// Group is an ordered list of parameters whose joint admissible
// combinations are enumerated as a single Tree. Different groups are
// independent; the overall SearchSpace is their Cartesian product.
type Group []*TuningParameter

// G constructs a Group from its parameters, declaration order preserved.
func G(params ...*TuningParameter) Group { return Group(params) }
