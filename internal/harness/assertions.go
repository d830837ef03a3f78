package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/roach88/lorenz/internal/machine"
	"github.com/roach88/lorenz/internal/teleprinter"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nTrace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s ^ %s = %s  mu=%d\n",
				ev.Seq, letter(ev.Input), letter(ev.Key), letter(ev.Output), ev.MuState)
		}
	}

	return buf.String()
}

// AssertionContext lets assertions rebuild the machine the scenario started
// from.
type AssertionContext struct {
	// Build returns a fresh machine at the scenario's start positions.
	Build func() (*machine.Machine, error)

	// Program is the step program the scenario ran.
	Program []Step

	// Input is the stream each feed step consumed.
	Input []int
}

// assertOutputEquals checks the concatenated output against expected text.
func assertOutputEquals(result *Result, assertion Assertion) error {
	actual := text(result.Output)
	if actual == strings.ToUpper(assertion.Expect) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputEquals,
		Expected: assertion.Expect,
		Actual:   actual,
		Trace:    result.Trace,
	}
}

// assertPositionsEqual compares final positions for each group the
// assertion names. Groups left out are not checked.
func assertPositionsEqual(result *Result, assertion Assertion) error {
	want := assertion.Positions
	for _, g := range machine.Groups {
		expected := want.Get(g)
		if expected == nil {
			continue
		}
		actual := result.Final.Get(g)
		if !slices.Equal(expected, actual) {
			return &AssertionError{
				Type:     AssertPositionsEqual,
				Expected: fmt.Sprintf("%s positions %v", g, expected),
				Actual:   fmt.Sprintf("%s positions %v", g, actual),
			}
		}
	}
	return nil
}

// assertRoundTrip reruns the program on a fresh machine, feeding each feed
// step the output it produced the first time. The machine is its own
// inverse, so every feed must give back the original input.
func (h *Harness) assertRoundTrip(result *Result, actx *AssertionContext) error {
	m, err := actx.Build()
	if err != nil {
		return err
	}

	feed := func(i int) []int { return result.segments[i] }
	segments, err := h.execute(m, actx.Program, feed, nil)
	if err != nil {
		return err
	}

	for i, seg := range segments {
		if !slices.Equal(seg, actx.Input) {
			return &AssertionError{
				Type:     AssertRoundTrip,
				Expected: fmt.Sprintf("feed %d to recover %s", i, text(actx.Input)),
				Actual:   text(seg),
			}
		}
	}
	return nil
}

// assertKeystreamPrefix checks the first keystream characters from the start
// positions.
func assertKeystreamPrefix(assertion Assertion, actx *AssertionContext) error {
	m, err := actx.Build()
	if err != nil {
		return err
	}

	want := strings.ToUpper(assertion.Expect)
	actual := text(m.Keystream(len([]rune(want))))
	if actual == want {
		return nil
	}
	return &AssertionError{
		Type:     AssertKeystreamPrefix,
		Expected: want,
		Actual:   actual,
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter is needed by round_trip and keystream_prefix.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	return New(zerolog.Nop()).evaluate(result, assertions, actx)
}

func (h *Harness) evaluate(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertOutputEquals:
			err = assertOutputEquals(result, assertion)
		case AssertPositionsEqual:
			err = assertPositionsEqual(result, assertion)
		case AssertRoundTrip:
			if actx == nil || actx.Build == nil {
				err = fmt.Errorf("round_trip requires an assertion context")
			} else {
				err = h.assertRoundTrip(result, actx)
			}
		case AssertKeystreamPrefix:
			if actx == nil || actx.Build == nil {
				err = fmt.Errorf("keystream_prefix requires an assertion context")
			} else {
				err = assertKeystreamPrefix(assertion, actx)
			}
		default:
			err = fmt.Errorf("unknown assertion type: %s", assertion.Type)
		}

		if err != nil {
			errors = append(errors, fmt.Sprintf("assertion %d (%s): %v", i, assertion.Type, err))
		}
	}

	return errors
}

// text renders code points in the default alphabet.
func text(symbols []int) string {
	s, err := teleprinter.Decode(symbols)
	if err != nil {
		return fmt.Sprint(symbols)
	}
	return s
}

func letter(symbol int) string {
	return text([]int{symbol})
}
