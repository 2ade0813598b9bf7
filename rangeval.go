package atf

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Range is a lazy sequence of Values: either a stepped numeric interval or
// an explicit ordered set. Implementations must satisfy:
//   - Size() >= 1
//   - At(i) is valid for 0 <= i < Size(); out of range is a programmer error
//   - NextElem forms a cursor that rewinds (returns false and resets) at the
//     end, so repeated passes over the same Range are allowed.
type Range interface {
	// Size reports the number of elements the range yields.
	Size() BigInt

	// At returns the i-th element, 0-indexed. i must satisfy 0 <= i < Size().
	At(i int64) (Value, error)

	// NextElem advances the lazy cursor, writing the next element into out
	// and returning true, or returning false (and resetting the cursor to
	// the start) once the range is exhausted.
	NextElem(out *Value) bool

	// Reset rewinds the cursor to the start without waiting for exhaustion.
	Reset()
}

// numeric is the type bound for IntervalRange. Only int64, uint64, float32
// and float64 are accepted at construction; any other numeric type fails
// with ErrInternal. Generators map a raw stepped element to the value
// actually exposed (e.g. Pow2Int64 turns an exponent range into powers of
// two).
type numeric interface {
	constraints.Integer | constraints.Float
}

// IntervalRange is a closed interval [begin, end] stepped by step, with an
// optional generator applied to each raw stepped element before it is
// exposed as a Value. Size is floor((end-begin)/step) + 1.
type IntervalRange[T numeric] struct {
	begin, end, step T
	gen              func(T) T
	toValue          func(T) Value
	size             BigInt
	pos              int64
}

// NewIntervalRange builds a generic interval range. gen may be nil (identity).
func NewIntervalRange[T numeric](begin, end, step T, gen func(T) T, toValue func(T) Value) (*IntervalRange[T], error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: IntervalRange: step must be positive", ErrInternal)
	}
	if end < begin {
		return nil, fmt.Errorf("%w: IntervalRange: end must be >= begin", ErrInternal)
	}
	if gen == nil {
		gen = func(x T) T { return x }
	}
	size, err := intervalSize(begin, end, step)
	if err != nil {
		return nil, err
	}
	return &IntervalRange[T]{begin: begin, end: end, step: step, gen: gen, toValue: toValue, size: size}, nil
}

func intervalSize[T numeric](begin, end, step T) (BigInt, error) {
	switch b := any(begin).(type) {
	case float32:
		e := any(end).(float32)
		s := any(step).(float32)
		n := math.Floor(float64(e-b)/float64(s)) + 1
		if n < 1 {
			return BigInt{}, fmt.Errorf("%w: IntervalRange: size must be >= 1", ErrInternal)
		}
		return NewBigIntFromInt64(int64(n)), nil
	case float64:
		e := any(end).(float64)
		s := any(step).(float64)
		n := math.Floor((e-b)/s) + 1
		if n < 1 {
			return BigInt{}, fmt.Errorf("%w: IntervalRange: size must be >= 1", ErrInternal)
		}
		return NewBigIntFromInt64(int64(n)), nil
	case int64:
		e := any(end).(int64)
		s := any(step).(int64)
		n := (e-b)/s + 1
		if n < 1 {
			return BigInt{}, fmt.Errorf("%w: IntervalRange: size must be >= 1", ErrInternal)
		}
		return NewBigIntFromInt64(n), nil
	case uint64:
		e := any(end).(uint64)
		s := any(step).(uint64)
		n := (e-b)/s + 1
		if n < 1 {
			return BigInt{}, fmt.Errorf("%w: IntervalRange: size must be >= 1", ErrInternal)
		}
		return NewBigIntFromUint64(n), nil
	default:
		return BigInt{}, fmt.Errorf("%w: IntervalRange: unsupported numeric type", ErrInternal)
	}
}

func (r *IntervalRange[T]) Size() BigInt { return r.size }

func (r *IntervalRange[T]) At(i int64) (Value, error) {
	sz, err := r.size.ToInt64()
	if err != nil {
		return Value{}, err
	}
	if i < 0 || i >= sz {
		return Value{}, fmt.Errorf("%w: IntervalRange.At: index %d out of [0,%d)", ErrOutOfRange, i, sz)
	}
	raw := r.begin + T(i)*r.step
	return r.toValue(r.gen(raw)), nil
}

func (r *IntervalRange[T]) NextElem(out *Value) bool {
	sz, _ := r.size.ToInt64()
	if r.pos >= sz {
		r.pos = 0
		return false
	}
	v, err := r.At(r.pos)
	if err != nil {
		r.pos = 0
		return false
	}
	*out = v
	r.pos++
	return true
}

func (r *IntervalRange[T]) Reset() { r.pos = 0 }

// NewIntInterval builds a closed int64 interval, e.g. [1,8] step 1.
func NewIntInterval(begin, end, step int64, gen func(int64) int64) (*IntervalRange[int64], error) {
	return NewIntervalRange(begin, end, step, gen, func(x int64) Value { return IntValue(x) })
}

// NewUintInterval builds a closed uint64 interval.
func NewUintInterval(begin, end, step uint64, gen func(uint64) uint64) (*IntervalRange[uint64], error) {
	return NewIntervalRange(begin, end, step, gen, func(x uint64) Value { return UintValue(x) })
}

// NewFloatInterval builds a closed float32 interval.
func NewFloatInterval(begin, end, step float32, gen func(float32) float32) (*IntervalRange[float32], error) {
	return NewIntervalRange(begin, end, step, gen, func(x float32) Value { return FloatValue(x) })
}

// NewDoubleInterval builds a closed float64 interval.
func NewDoubleInterval(begin, end, step float64, gen func(float64) float64) (*IntervalRange[float64], error) {
	return NewIntervalRange(begin, end, step, gen, func(x float64) Value { return DoubleValue(x) })
}

// SetRange is an explicit, finite list of values in insertion order. Unlike
// IntervalRange it admits any Value kind, including bool and string.
type SetRange struct {
	values []Value
	pos    int
}

// NewSetRange builds a Range over an explicit ordered list of values.
func NewSetRange(values ...Value) (*SetRange, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: SetRange: at least one value required", ErrInternal)
	}
	cp := make([]Value, len(values))
	copy(cp, values)
	return &SetRange{values: cp}, nil
}

func (r *SetRange) Size() BigInt { return NewBigIntFromInt64(int64(len(r.values))) }

func (r *SetRange) At(i int64) (Value, error) {
	if i < 0 || i >= int64(len(r.values)) {
		return Value{}, fmt.Errorf("%w: SetRange.At: index %d out of [0,%d)", ErrOutOfRange, i, len(r.values))
	}
	return r.values[i], nil
}

func (r *SetRange) NextElem(out *Value) bool {
	if r.pos >= len(r.values) {
		r.pos = 0
		return false
	}
	*out = r.values[r.pos]
	r.pos++
	return true
}

func (r *SetRange) Reset() { r.pos = 0 }
