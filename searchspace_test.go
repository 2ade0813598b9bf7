package atf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/assert"
)

func flatParam(name string, values ...int64) *TuningParameter {
	vs := make([]Value, len(values))
	for i, v := range values {
		vs[i] = IntValue(v)
	}
	rng, err := NewSetRange(vs...)
	if err != nil {
		panic(err)
	}
	return NewTuningParameter(name, rng, nil)
}

func TestSearchSpaceFlatSize(t *testing.T) {
	x := flatParam("x", 1, 2, 3)
	y := flatParam("y", 10, 20)

	ss, err := NewSearchSpace(G(x, y))
	require.NoError(t, err)
	assert.Equal(t, "6", ss.Size().String())
	assert.Equal(t, 2, ss.Dimensions())
}

// TestConstrainedSquareSpace mirrors the classic "second parameter bounded by
// the first" (M x N where N <= M) constrained-space example.
func TestConstrainedSquareSpace(t *testing.T) {
	m := flatParam("m", 1, 2, 3)
	nRange, err := NewIntInterval(1, 3, 1, nil)
	require.NoError(t, err)
	n := NewTuningParameter("n", nRange, nil)
	n.Pred = func(v Value) bool {
		mv, ok := m.Current()
		if !ok {
			return false
		}
		mi, _ := mv.AsInt64()
		ni, _ := v.AsInt64()
		return ni <= mi
	}

	ss, err := NewSearchSpace(G(m, n))
	require.NoError(t, err)
	// m=1 -> n in {1}; m=2 -> n in {1,2}; m=3 -> n in {1,2,3}: 1+2+3 = 6.
	assert.Equal(t, "6", ss.Size().String())
}

func TestSearchSpaceIndexCoordinateAgree(t *testing.T) {
	x := flatParam("x", 1, 2, 3, 4)
	y := flatParam("y", 5, 6, 7)
	ss, err := NewSearchSpace(G(x, y))
	require.NoError(t, err)

	size, err := ss.Size().ToInt64()
	require.NoError(t, err)

	for i := int64(0); i < size; i++ {
		idx := NewBigIntFromInt64(i)
		byIndex, err := ss.GetByIndex(idx)
		require.NoError(t, err)

		coord, err := ss.CoordinateOf(idx)
		require.NoError(t, err)

		byCoord, err := ss.GetByCoordinates(coord)
		require.NoError(t, err)

		for _, name := range byIndex.Names() {
			a, _ := byIndex.Get(name)
			b, _ := byCoord.Get(name)
			assert.True(t, a.Value.Equal(b.Value), "mismatch at index %d for %s", i, name)
		}
	}
}

func TestSearchSpaceOutOfRangeIndex(t *testing.T) {
	x := flatParam("x", 1, 2)
	ss, err := NewSearchSpace(G(x))
	require.NoError(t, err)

	_, err = ss.GetByIndex(NewBigIntFromInt64(99))
	assert.ErrorIs(t, err, ErrOutOfRange)
}
