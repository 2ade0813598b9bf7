package atf

// Predicate is a unary admissibility test over a single Range output. A
// TuningParameter yields only the subsequence of its Range for which its
// Predicate holds. Predicates close over Go values directly, which is how
// inter-parameter constraints are expressed: a later parameter's predicate
// can capture an earlier *TuningParameter and read its Current() value,
// since tree construction binds parameters left to right before recursing
// (see treenode.go).
type Predicate func(v Value) bool

// And short-circuits: evaluation stops at the first predicate that rejects.
func And(preds ...Predicate) Predicate {
	return func(v Value) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Or short-circuits: evaluation stops at the first predicate that accepts.
func Or(preds ...Predicate) Predicate {
	return func(v Value) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}

// Divides admits v iff v divides m (m % v == 0). Values that cannot be
// narrowed to int64, or a zero v, are rejected rather than causing a panic,
// since predicates run deep inside tree construction where failing fast on
// an unrelated type mismatch would be surprising.
func Divides(m Value) Predicate {
	return func(v Value) bool {
		mi, err1 := m.AsInt64()
		vi, err2 := v.AsInt64()
		if err1 != nil || err2 != nil || vi == 0 {
			return false
		}
		return mi%vi == 0
	}
}

// MultipleOf admits v iff m divides v (v % m == 0).
func MultipleOf(m Value) Predicate {
	return func(v Value) bool {
		mi, err1 := m.AsInt64()
		vi, err2 := v.AsInt64()
		if err1 != nil || err2 != nil || mi == 0 {
			return false
		}
		return vi%mi == 0
	}
}

// LessThan admits v iff v < m.
func LessThan(m Value) Predicate { return func(v Value) bool { return v.Compare(m) < 0 } }

// LessThanOrEqual admits v iff v <= m.
func LessThanOrEqual(m Value) Predicate { return func(v Value) bool { return v.Compare(m) <= 0 } }

// GreaterThan admits v iff v > m.
func GreaterThan(m Value) Predicate { return func(v Value) bool { return v.Compare(m) > 0 } }

// GreaterThanOrEqual admits v iff v >= m.
func GreaterThanOrEqual(m Value) Predicate { return func(v Value) bool { return v.Compare(m) >= 0 } }

// EqualTo admits v iff v == m.
func EqualTo(m Value) Predicate { return func(v Value) bool { return v.Compare(m) == 0 } }

// Unequal admits v iff v != m.
func Unequal(m Value) Predicate { return func(v Value) bool { return v.Compare(m) != 0 } }

// Pow2Int64 is a generator for IntInterval: it turns a stepped exponent
// range into powers of two, the common shape for block/work-group sizes in
// a GPU-kernel auto-tuner ("try every power of two from 1 to 1024").
func Pow2Int64(exp int64) int64 { return 1 << uint(exp) }
