package teleprinter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dotCrossCases = []struct {
	bits []int
	text string
}{
	{[]int{1, 0, 0}, "+.."},
	{[]int{0, 1, 1, 0, 0}, ".++.."},
	{[]int{1, 0, 0, 1, 1, 0, 1, 1, 0}, "+..++.++."},
	{[]int{1, 1, 0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 1, 0, 0}, "++..+++.....+.."},
	{[]int{0, 0, 1, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0}, "..+...+++++++++++."},
}

func TestDotCross(t *testing.T) {
	for _, tc := range dotCrossCases {
		got, err := DotCross(tc.bits)
		require.NoError(t, err)
		assert.Equal(t, tc.text, got)
	}
}

func TestDotCross_NonBinary(t *testing.T) {
	_, err := DotCross([]int{0, 1, 2})
	assert.ErrorIs(t, err, ErrNonBinary)
}

func TestBinarify(t *testing.T) {
	for _, tc := range dotCrossCases {
		got, err := Binarify(tc.text)
		require.NoError(t, err)
		assert.Equal(t, tc.bits, got)
	}
}

func TestBinarify_Invalid(t *testing.T) {
	_, err := Binarify("+.x")
	assert.ErrorIs(t, err, ErrNotDotCross)
}

func TestImpulsesOf(t *testing.T) {
	bits, err := ImpulsesOf(22)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1, 1, 0}, bits)

	bits, err = ImpulsesOf(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, bits)

	_, err = ImpulsesOf(32)
	assert.ErrorIs(t, err, ErrIllegalSymbol)
}
