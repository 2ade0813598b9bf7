package atf

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
)

// BigInt is an arbitrary-precision non-negative integer, the addressing
// currency of SearchSpace: a realistic constrained space built from a
// handful of six-digit parameters can exceed 2^64 admissible configurations,
// which a plain uint64 index cannot address. It wraps math/big.Int the way
// the broader Go ecosystem reaches for it whenever a counter can outgrow a
// machine word (see math/big usage for oversized Fibonacci terms in
// agbruneau-Fibonacci), rather than hand-rolling a bignum.
type BigInt struct {
	v *big.Int
}

// BigIntZero is the additive identity.
func BigIntZero() BigInt { return BigInt{v: big.NewInt(0)} }

// BigIntOne is the multiplicative identity.
func BigIntOne() BigInt { return BigInt{v: big.NewInt(1)} }

// NewBigIntFromInt64 wraps a non-negative int64. Negative input panics: a
// negative BigInt is a programmer error, not a representable value.
func NewBigIntFromInt64(x int64) BigInt {
	if x < 0 {
		panic("atf: NewBigIntFromInt64: negative value")
	}
	return BigInt{v: big.NewInt(x)}
}

// NewBigIntFromUint64 wraps a uint64, always non-negative.
func NewBigIntFromUint64(x uint64) BigInt {
	return BigInt{v: new(big.Int).SetUint64(x)}
}

// ParseBigInt parses a base-10 non-negative integer literal.
func ParseBigInt(s string) (BigInt, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return BigInt{}, fmt.Errorf("%w: invalid big integer literal %q", ErrInternal, s)
	}
	return BigInt{v: v}, nil
}

func (b BigInt) ensure() *big.Int {
	if b.v == nil {
		return big.NewInt(0)
	}
	return b.v
}

func (b BigInt) String() string { return b.ensure().String() }

// Digits returns the number of base-10 digits in the value (at least 1).
func (b BigInt) Digits() int { return len(b.ensure().String()) }

func (b BigInt) IsZero() bool { return b.ensure().Sign() == 0 }

func (b BigInt) Add(o BigInt) BigInt {
	return BigInt{v: new(big.Int).Add(b.ensure(), o.ensure())}
}

// Sub returns b - o, failing with ErrInternal if the result would be
// negative (BigInt is non-negative by construction).
func (b BigInt) Sub(o BigInt) (BigInt, error) {
	r := new(big.Int).Sub(b.ensure(), o.ensure())
	if r.Sign() < 0 {
		return BigInt{}, fmt.Errorf("%w: BigInt subtraction produced a negative value", ErrInternal)
	}
	return BigInt{v: r}, nil
}

func (b BigInt) Mul(o BigInt) BigInt {
	return BigInt{v: new(big.Int).Mul(b.ensure(), o.ensure())}
}

// Div returns the truncated quotient b / o, failing on division by zero.
func (b BigInt) Div(o BigInt) (BigInt, error) {
	if o.IsZero() {
		return BigInt{}, fmt.Errorf("%w: BigInt division by zero", ErrInternal)
	}
	return BigInt{v: new(big.Int).Div(b.ensure(), o.ensure())}, nil
}

// Mod returns b mod o (Euclidean, always non-negative for non-negative
// operands), failing on division by zero.
func (b BigInt) Mod(o BigInt) (BigInt, error) {
	if o.IsZero() {
		return BigInt{}, fmt.Errorf("%w: BigInt modulo by zero", ErrInternal)
	}
	return BigInt{v: new(big.Int).Mod(b.ensure(), o.ensure())}, nil
}

func (b BigInt) Pow(exp uint64) BigInt {
	return BigInt{v: new(big.Int).Exp(b.ensure(), new(big.Int).SetUint64(exp), nil)}
}

func (b BigInt) Inc() BigInt { return b.Add(BigIntOne()) }

func (b BigInt) Dec() (BigInt, error) { return b.Sub(BigIntOne()) }

func (b BigInt) Cmp(o BigInt) int { return b.ensure().Cmp(o.ensure()) }

func (b BigInt) Eq(o BigInt) bool  { return b.Cmp(o) == 0 }
func (b BigInt) Lt(o BigInt) bool  { return b.Cmp(o) < 0 }
func (b BigInt) Lte(o BigInt) bool { return b.Cmp(o) <= 0 }
func (b BigInt) Gt(o BigInt) bool  { return b.Cmp(o) > 0 }
func (b BigInt) Gte(o BigInt) bool { return b.Cmp(o) >= 0 }

// ToInt64 narrows the value to an int64, failing with ErrBigIntOverflow when
// it does not fit.
func (b BigInt) ToInt64() (int64, error) {
	if !b.ensure().IsInt64() {
		return 0, ErrBigIntOverflow
	}
	return b.ensure().Int64(), nil
}

// ToUint64 narrows the value to a uint64, failing with ErrBigIntOverflow when
// it does not fit.
func (b BigInt) ToUint64() (uint64, error) {
	if !b.ensure().IsUint64() {
		return 0, ErrBigIntOverflow
	}
	return b.ensure().Uint64(), nil
}

// randomPrecisionDigits is the fixed precision used when encoding a sampled
// double as an integer numerator for scaled BigInt sampling.
const randomPrecisionDigits = 15

var pow10Precision = new(big.Int).Exp(big.NewInt(10), big.NewInt(randomPrecisionDigits), nil)

// RandomInRange draws a uniform sample in [min, max) via rejection-free
// scaling: draw a double d in [0,1) from rng, encode it as a fixed-precision
// integer n, and return min + ((max-min)*n)/10^precision. This avoids the
// modulo-bias and retry loops a naive "big.Int.Rand mod range" would need
// once range exceeds what a single machine word can express.
func RandomInRange(min, max BigInt, rng *rand.Rand) (BigInt, error) {
	span, err := max.Sub(min)
	if err != nil {
		return BigInt{}, fmt.Errorf("%w: RandomInRange: max must be >= min", ErrInternal)
	}
	if span.IsZero() {
		return min, nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	d := rng.Float64()
	n := int64(d * math.Pow10(randomPrecisionDigits))
	if n < 0 {
		n = 0
	}
	numer := new(big.Int).Mul(span.ensure(), big.NewInt(n))
	scaled := new(big.Int).Div(numer, pow10Precision)
	return min.Add(BigInt{v: scaled}), nil
}
