package atf

// ExhaustiveIndex is the index technique that walks every index of the
// search space in order, wrapping back to 0 once it reaches size-1. It is
// the engine's default technique when none is configured.
type ExhaustiveIndex struct {
	// BatchSize controls how many indices are proposed per batch (default 1).
	BatchSize int

	size BigInt
	next BigInt
}

// NewExhaustiveIndex builds an ExhaustiveIndex technique proposing one
// index per batch.
func NewExhaustiveIndex() *ExhaustiveIndex { return &ExhaustiveIndex{BatchSize: 1} }

func (e *ExhaustiveIndex) Initialize(size BigInt) {
	if e.BatchSize <= 0 {
		e.BatchSize = 1
	}
	e.size = size
	e.next = BigIntZero()
}

func (e *ExhaustiveIndex) NextIndices() []BigInt {
	out := make([]BigInt, 0, e.BatchSize)
	for i := 0; i < e.BatchSize; i++ {
		out = append(out, e.next)
		e.next = e.next.Inc()
		if e.next.Gte(e.size) {
			e.next = BigIntZero()
		}
	}
	return out
}

func (e *ExhaustiveIndex) ReportCosts(results []IndexCost) {}

func (e *ExhaustiveIndex) Finalize() {}
