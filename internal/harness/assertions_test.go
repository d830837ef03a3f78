package harness

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lorenz/internal/machine"
	"github.com/roach88/lorenz/internal/patterns"
	"github.com/roach88/lorenz/internal/rotor"
)

func finalResult(final machine.Positions) *Result {
	r := NewResult()
	r.Final = final
	return r
}

func TestAssertOutputEquals(t *testing.T) {
	r := NewResult()
	r.Output = []int{24, 9, 24}

	assert.NoError(t, assertOutputEquals(r, Assertion{Expect: "ALA"}))
	assert.NoError(t, assertOutputEquals(r, Assertion{Expect: "ala"}), "expect is matched case-insensitively")

	err := assertOutputEquals(r, Assertion{Expect: "ALAN"})
	var ae *AssertionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, AssertOutputEquals, ae.Type)
	assert.Equal(t, "ALA", ae.Actual)
}

func TestAssertPositionsEqual_SubsetOfGroups(t *testing.T) {
	r := finalResult(machine.Positions{
		Chi: []int{1, 2},
		Psi: []int{3},
		Mu:  []int{4, 5},
	})

	assert.NoError(t, assertPositionsEqual(r, Assertion{Positions: &machine.Positions{Mu: []int{4, 5}}}))
	assert.NoError(t, assertPositionsEqual(r, Assertion{Positions: &machine.Positions{
		Chi: []int{1, 2}, Psi: []int{3}, Mu: []int{4, 5},
	}}))

	err := assertPositionsEqual(r, Assertion{Positions: &machine.Positions{Psi: []int{0}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "psi positions [0]")
	assert.Contains(t, err.Error(), "psi positions [3]")
}

func TestEvaluateAssertions_ContextRequired(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertRoundTrip},
		{Type: AssertKeystreamPrefix, Expect: "A"},
	}, nil)

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "round_trip requires an assertion context")
	assert.Contains(t, errs[1], "keystream_prefix requires an assertion context")
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{{Type: "final_state"}}, nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "unknown assertion type: final_state")
}

func TestEvaluateAssertions_KeystreamPrefix(t *testing.T) {
	// One Chi wheel alternating 1, 0 and Psi wheels stuck at 0 give the
	// keystream 1, 0, 1, 0: "T/T/".
	actx := &AssertionContext{
		Build: func() (*machine.Machine, error) {
			return machine.New(machine.Wheels{
				Chi: []rotor.Pattern{{1, 0}},
				Psi: []rotor.Pattern{{0}},
				Mu:  []rotor.Pattern{{1}},
			}, nil)
		},
	}

	errs := EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertKeystreamPrefix, Expect: "T/T/"},
		{Type: AssertKeystreamPrefix, Expect: "t/t"},
	}, actx)
	assert.Empty(t, errs)

	errs = EvaluateAssertions(NewResult(), []Assertion{{Type: AssertKeystreamPrefix, Expect: "TT"}}, actx)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Actual: T/")
}

// contextFor builds the assertion context Run would use for s.
func contextFor(t *testing.T, s *Scenario) *AssertionContext {
	t.Helper()
	file, err := patterns.Load(s.Patterns)
	require.NoError(t, err)
	setting, err := file.Setting(s.Setting)
	require.NoError(t, err)
	stream, err := s.Stream()
	require.NoError(t, err)

	return &AssertionContext{
		Build: func() (*machine.Machine, error) {
			return setting.Machine(s.Positions)
		},
		Program: s.Program(),
		Input:   stream,
	}
}

func TestEvaluateAssertions_RoundTripDetectsTamperedOutput(t *testing.T) {
	scenario := bletchleyScenario()
	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass)

	// Flip one output symbol; decrypting must then miss the input.
	result.segments[0][3] ^= 1

	h := New(zerolog.Nop())
	errs := h.evaluate(result, []Assertion{{Type: AssertRoundTrip}}, contextFor(t, scenario))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "round_trip")
}

func TestAssertionError_ErrorFormat(t *testing.T) {
	err := &AssertionError{
		Type:     AssertOutputEquals,
		Expected: "ALAN",
		Actual:   "ALAM",
		Trace: []TraceEvent{
			{Seq: 1, Input: 24, Key: 0, Output: 24, MuState: 1},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: output_equals")
	assert.Contains(t, msg, "Expected: ALAN")
	assert.Contains(t, msg, "Actual: ALAM")
	assert.Contains(t, msg, "[1] A ^ / = A  mu=1")
}
