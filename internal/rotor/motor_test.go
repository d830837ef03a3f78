package rotor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lorenz/internal/testutil"
)

func TestNewMotorSetFromPatterns(t *testing.T) {
	m, err := NewMotorSetFromPatterns(fixture(testutil.Mu), nil)
	require.NoError(t, err)
	assert.Equal(t, []int{61, 37}, m.Sizes())
}

func TestNewMotorSetFromPatterns_Invalid(t *testing.T) {
	mu := fixture(testutil.Mu)

	_, err := NewMotorSetFromPatterns([]Pattern{{7}, {8}}, nil)
	requireConfigError(t, err, ErrCodeNonBinaryCam)

	_, err = NewMotorSetFromPatterns(mu, []int{1, 2, 3})
	requireConfigError(t, err, ErrCodePositionCount)

	_, err = NewMotorSetFromPatterns(mu, []int{100, 100})
	requireConfigError(t, err, ErrCodeBadPosition)

	_, err = NewMotorSetFromPatterns(nil, nil)
	requireConfigError(t, err, ErrCodeNoRotors)

	_, err = NewMotorSet()
	requireConfigError(t, err, ErrCodeNoRotors)
}

func TestMotorSet_Step(t *testing.T) {
	// The first motor shows a cross on 22 (mod 37) of the 1024 cycles that
	// start at 21, so the second motor comes round to 3.
	m, err := NewMotorSetFromPatterns(fixture(testutil.Mu), []int{21, 18})
	require.NoError(t, err)

	for i := 0; i < 1024; i++ {
		m.Step()
	}

	assert.Equal(t, []int{8, 3}, m.Positions())
}

func TestMotorSet_Staggered(t *testing.T) {
	// The first motor reads + . . + . + + . . + at positions 0..9, so the
	// second motor moves on exactly the cycles that start on those crosses.
	m, err := NewMotorSetFromPatterns(fixture(testutil.Mu), nil)
	require.NoError(t, err)

	want := [][]int{
		{0, 0}, {1, 1}, {2, 1}, {3, 1}, {4, 2},
		{5, 2}, {6, 3}, {7, 4}, {8, 4}, {9, 4},
	}
	for i, w := range want {
		assert.Equal(t, w, m.Positions(), "cycle %d", i)
		m.Step()
	}
}

func TestMotorSet_Cascade(t *testing.T) {
	// Rotor 0 always shows a cross, so rotor 1 always moves. Rotor 1 only
	// shows dots, so rotor 2 never moves.
	m, err := NewMotorSetFromPatterns([]Pattern{{1, 1, 1}, {0, 0, 0, 0}, {1, 0}}, nil)
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		m.Step()
	}
	assert.Equal(t, []int{1, 3, 0}, m.Positions())
	assert.Equal(t, 1, m.State())
}

func TestMotorSet_State(t *testing.T) {
	m, err := NewMotorSetFromPatterns(fixture(testutil.Mu), []int{57, 28})
	require.NoError(t, err)

	want := []int{1, 1, 0, 0, 1, 1, 1, 1, 0, 0, 1, 1, 1, 1, 0, 0}
	for i, w := range want {
		assert.Equal(t, w, m.State(), "step %d", i)
		m.Step()
	}
}

func TestMotorSet_StateIsLastRotor(t *testing.T) {
	m, err := NewMotorSetFromPatterns([]Pattern{{1}, {0}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.State())

	m, err = NewMotorSetFromPatterns([]Pattern{{0}, {1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, m.State())
}

func TestMotorSet_BackstepInvertsStep(t *testing.T) {
	m, err := NewMotorSetFromPatterns(fixture(testutil.Mu), []int{57, 28})
	require.NoError(t, err)

	const cycles = 3000
	history := make([][]int, 0, cycles)
	for i := 0; i < cycles; i++ {
		history = append(history, m.Positions())
		m.Step()
	}
	for i := cycles - 1; i >= 0; i-- {
		m.Backstep()
		require.Equal(t, history[i], m.Positions(), "cycle %d", i)
	}
}

func TestMotorSet_BackstepThreeRotors(t *testing.T) {
	patterns := []Pattern{{1, 0, 1, 1, 0}, {0, 1, 1}, {1, 0, 0, 1, 0, 1, 1}}
	m, err := NewMotorSetFromPatterns(patterns, []int{4, 2, 6})
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		before := m.Positions()
		m.Step()
		m.Backstep()
		require.Equal(t, before, m.Positions(), "cycle %d", i)
		m.Step()
	}
}

func TestMotorSet_ResetToAdoptionPosition(t *testing.T) {
	a, err := NewRotor(Pattern{1, 1, 0}, 0)
	require.NoError(t, err)
	b, err := NewRotor(Pattern{0, 1, 0, 1}, 3)
	require.NoError(t, err)
	a.Step()

	m, err := NewMotorSet(a, b)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		m.Step()
	}
	m.Reset()
	assert.Equal(t, []int{1, 3}, m.Positions())
}
