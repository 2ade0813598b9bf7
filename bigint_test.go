package atf

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigIntArithmetic(t *testing.T) {
	a := NewBigIntFromInt64(10)
	b := NewBigIntFromInt64(3)

	assert.Equal(t, "13", a.Add(b).String())
	assert.Equal(t, "30", a.Mul(b).String())

	q, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, "3", q.String())

	m, err := a.Mod(b)
	require.NoError(t, err)
	assert.Equal(t, "1", m.String())
}

func TestBigIntSubNegativeFails(t *testing.T) {
	a := NewBigIntFromInt64(1)
	b := NewBigIntFromInt64(2)
	_, err := a.Sub(b)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestBigIntOverflowOnNarrow(t *testing.T) {
	huge, err := ParseBigInt("99999999999999999999999999999999")
	require.NoError(t, err)
	_, err = huge.ToInt64()
	assert.ErrorIs(t, err, ErrBigIntOverflow)
}

func TestRandomInRangeStaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	min := NewBigIntFromInt64(10)
	max := NewBigIntFromInt64(20)
	for i := 0; i < 200; i++ {
		v, err := RandomInRange(min, max, rng)
		require.NoError(t, err)
		assert.True(t, v.Gte(min))
		assert.True(t, v.Lt(max))
	}
}

func TestRandomInRangeEqualBoundsReturnsMin(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	same := NewBigIntFromInt64(7)
	v, err := RandomInRange(same, same, rng)
	require.NoError(t, err)
	assert.True(t, v.Eq(same))
}
