package atf

import "math/rand"

// RandomIndex is the index technique that proposes a uniform random index
// in [0, size) every batch, using BigInt.RandomInRange to stay correct even
// when size exceeds a machine word.
type RandomIndex struct {
	BatchSize int
	Rng       *rand.Rand

	size BigInt
}

// NewRandomIndex builds a RandomIndex technique proposing one index per
// batch.
func NewRandomIndex() *RandomIndex { return &RandomIndex{BatchSize: 1, Rng: defaultRNG()} }

func (r *RandomIndex) Initialize(size BigInt) {
	if r.BatchSize <= 0 {
		r.BatchSize = 1
	}
	if r.Rng == nil {
		r.Rng = defaultRNG()
	}
	r.size = size
}

func (r *RandomIndex) NextIndices() []BigInt {
	out := make([]BigInt, 0, r.BatchSize)
	for i := 0; i < r.BatchSize; i++ {
		idx, err := RandomInRange(BigIntZero(), r.size, r.Rng)
		if err != nil {
			idx = BigIntZero()
		}
		out = append(out, idx)
	}
	return out
}

func (r *RandomIndex) ReportCosts(results []IndexCost) {}

func (r *RandomIndex) Finalize() {}
