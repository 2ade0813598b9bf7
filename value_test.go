package atf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueEqualAndCompare(t *testing.T) {
	a := IntValue(3)
	b := IntValue(3)
	c := IntValue(5)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, 0, a.Compare(b))
	assert.Equal(t, -1, a.Compare(c))
	assert.Equal(t, 1, c.Compare(a))
}

func TestValueCompareMismatchedKindsPanics(t *testing.T) {
	assert.Panics(t, func() {
		IntValue(1).Compare(StringValue("1"))
	})
}

func TestValueAsInt64Narrowing(t *testing.T) {
	v := DoubleValue(4.0)
	i, err := v.AsInt64()
	assert.NoError(t, err)
	assert.Equal(t, int64(4), i)

	frac := DoubleValue(4.5)
	_, err = frac.AsInt64()
	assert.ErrorIs(t, err, ErrNarrow)

	huge := UintValue(1 << 63)
	_, err = huge.AsInt64()
	assert.ErrorIs(t, err, ErrNarrow)
}

func TestValueStringFormatsPerKind(t *testing.T) {
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "42", IntValue(42).String())
	assert.Equal(t, "hi", StringValue("hi").String())
}
