package harness

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/roach88/lorenz/internal/machine"
	"github.com/roach88/lorenz/internal/patterns"
)

// Harness runs scenarios against real machines built from setting files.
type Harness struct {
	logger zerolog.Logger
}

// New creates a harness that logs step progress to logger.
func New(logger zerolog.Logger) *Harness {
	return &Harness{logger: logger}
}

// Run executes a scenario with logging disabled.
func Run(scenario *Scenario) (*Result, error) {
	return New(zerolog.Nop()).Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Load the setting file and pick the setting
// 2. Build a machine at the start positions
// 3. Execute the step program, tracing every fed symbol
// 4. Evaluate assertions against the result
//
// An error is returned only when the scenario cannot run at all. Failed
// assertions are reported through Result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	file, err := patterns.Load(scenario.Patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}
	setting, err := file.Setting(scenario.Setting)
	if err != nil {
		return nil, err
	}
	fingerprint, err := setting.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint setting: %w", err)
	}

	stream, err := scenario.Stream()
	if err != nil {
		return nil, fmt.Errorf("failed to encode input: %w", err)
	}

	build := func() (*machine.Machine, error) {
		return setting.Machine(scenario.Positions)
	}
	m, err := build()
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.Setting = setting.Name
	result.Fingerprint = fingerprint
	result.Start = m.Positions()

	program := scenario.Program()
	feed := func(int) []int { return stream }
	segments, err := h.execute(m, program, feed, result)
	if err != nil {
		return nil, err
	}
	result.segments = segments
	for _, seg := range segments {
		result.Output = append(result.Output, seg...)
	}
	result.Final = m.Positions()

	h.logger.Debug().
		Str("scenario", scenario.Name).
		Str("setting", setting.Name).
		Int("symbols", len(result.Output)).
		Msg("scenario executed")

	actx := &AssertionContext{
		Build:   build,
		Program: program,
		Input:   stream,
	}
	for _, msg := range h.evaluate(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// execute runs program on m. feed supplies the stream for the i-th feed
// step. When result is non-nil every fed symbol is traced into it.
// The output of each feed step is returned in order.
func (h *Harness) execute(m *machine.Machine, program []Step, feed func(i int) []int, result *Result) ([][]int, error) {
	var segments [][]int

	for i, step := range program {
		switch step.Op {
		case OpFeed:
			in := feed(len(segments))
			out, err := h.feed(m, in, result)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			segments = append(segments, out)

		case OpStep, OpBackstep:
			n := max(step.Count, 1)
			for j := 0; j < n; j++ {
				if step.Op == OpStep {
					m.Step()
				} else {
					m.Backstep()
				}
			}

		case OpReset:
			m.Reset()

		default:
			return nil, fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}

		h.logger.Trace().
			Int("step", i).
			Str("op", step.Op).
			Ints("chi", m.Positions().Chi).
			Ints("psi", m.Positions().Psi).
			Ints("mu", m.Positions().Mu).
			Msg("step completed")
	}

	return segments, nil
}

// feed passes in through m one symbol at a time so each symbol's key and
// motor reading can be traced.
func (h *Harness) feed(m *machine.Machine, in []int, result *Result) ([]int, error) {
	if result == nil {
		return m.Feed(in)
	}

	out := make([]int, 0, len(in))
	for _, x := range in {
		ev := TraceEvent{
			Input:     x,
			Key:       m.State(),
			MuState:   m.MotorState(),
			Positions: m.Positions(),
		}
		y, err := m.Feed([]int{x})
		if err != nil {
			return nil, err
		}
		ev.Output = y[0]
		result.AddTrace(ev)
		out = append(out, y[0])
	}
	return out, nil
}
