package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/lorenz/internal/canonical"
	"github.com/roach88/lorenz/internal/machine"
)

// Snapshot renders a scenario result as canonical JSON for golden
// comparison. Key order and spacing are fixed, so equal runs give equal bytes.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	return canonical.Marshal(snapshotMap(scenarioName, result))
}

// TraceHash identifies a trace independent of the scenario that produced it.
func TraceHash(result *Result) (string, error) {
	return canonical.Hash(canonical.DomainTrace, traceList(result.Trace))
}

func snapshotMap(scenarioName string, result *Result) map[string]any {
	return map[string]any{
		"scenario_name": scenarioName,
		"setting":       result.Setting,
		"fingerprint":   result.Fingerprint,
		"output":        text(result.Output),
		"final":         positionsMap(result.Final),
		"trace":         traceList(result.Trace),
	}
}

func traceList(trace []TraceEvent) []any {
	list := make([]any, len(trace))
	for i, ev := range trace {
		list[i] = map[string]any{
			"seq":       ev.Seq,
			"input":     ev.Input,
			"key":       ev.Key,
			"output":    ev.Output,
			"mu_state":  ev.MuState,
			"positions": positionsMap(ev.Positions),
		}
	}
	return list
}

func positionsMap(p machine.Positions) map[string]any {
	return map[string]any{
		"chi": p.Chi,
		"psi": p.Psi,
		"mu":  p.Mu,
	}
}

// GoldenPath returns the golden file for a scenario file: a golden/
// directory next to it, named after the scenario file.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// WriteGolden stores the result's snapshot at goldenPath, creating the
// directory if needed.
func WriteGolden(goldenPath, scenarioName string, result *Result) error {
	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return fmt.Errorf("failed to marshal trace: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether the result matches the snapshot stored at
// goldenPath.
func CompareGolden(goldenPath, scenarioName string, result *Result) (bool, error) {
	want, err := os.ReadFile(goldenPath)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	got, err := Snapshot(scenarioName, result)
	if err != nil {
		return false, fmt.Errorf("failed to marshal current trace: %w", err)
	}
	return bytes.Equal(bytes.TrimSpace(want), got), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
