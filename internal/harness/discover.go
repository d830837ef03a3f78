package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PatternsNotFoundError is returned when a scenario references a setting
// file that doesn't exist.
type PatternsNotFoundError struct {
	Scenario string
	Path     string
}

// Error implements the error interface.
func (e *PatternsNotFoundError) Error() string {
	return fmt.Sprintf("scenario %q references patterns file %q which does not exist", e.Scenario, e.Path)
}

// FindScenarios walks dir for .yaml and .yml scenario files. A non-empty
// filter is a glob matched against the file name without its extension.
// Files under golden/ directories are skipped.
func FindScenarios(dir, filter string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
	}

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "golden" && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			if matched, _ := filepath.Match(filter, name); !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// SuiteOptions controls RunSuite.
type SuiteOptions struct {
	// Filter is passed to FindScenarios.
	Filter string

	// Update rewrites golden files instead of comparing against them.
	Update bool
}

// ScenarioReport is the outcome of one scenario file in a suite.
type ScenarioReport struct {
	Name      string   `json:"name"`
	File      string   `json:"file"`
	Pass      bool     `json:"pass"`
	Golden    string   `json:"golden,omitempty"` // "match", "updated" or "missing"
	TraceHash string   `json:"trace_hash,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// SuiteResult summarizes a directory of scenarios.
type SuiteResult struct {
	Scenarios []ScenarioReport `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// RunSuite runs every scenario under dir. Scenario failures are reported in
// the result; an error is returned only if dir cannot be searched.
//
// For each scenario file:
// 1. Load it, resolving patterns relative to the file
// 2. Run it and evaluate assertions
// 3. Compare against (or with Update, rewrite) golden/<file>.golden
func (h *Harness) RunSuite(dir string, opts SuiteOptions) (*SuiteResult, error) {
	files, err := FindScenarios(dir, opts.Filter)
	if err != nil {
		return nil, err
	}

	suite := &SuiteResult{Scenarios: []ScenarioReport{}, Total: len(files)}
	for _, file := range files {
		report := h.runFile(file, opts)
		if report.Pass {
			suite.Passed++
		} else {
			suite.Failed++
		}
		h.logger.Debug().
			Str("scenario", report.Name).
			Bool("pass", report.Pass).
			Str("golden", report.Golden).
			Msg("scenario finished")
		suite.Scenarios = append(suite.Scenarios, report)
	}
	return suite, nil
}

func (h *Harness) runFile(file string, opts SuiteOptions) ScenarioReport {
	report := ScenarioReport{Name: filepath.Base(file), File: file}
	fail := func(format string, args ...any) ScenarioReport {
		report.Errors = append(report.Errors, fmt.Sprintf(format, args...))
		return report
	}

	scenario, err := LoadScenario(file)
	if err != nil {
		return fail("failed to load scenario: %v", err)
	}
	report.Name = scenario.Name

	result, err := h.Run(scenario)
	if err != nil {
		return fail("execution failed: %v", err)
	}
	report.Errors = append(report.Errors, result.Errors...)
	if hash, err := TraceHash(result); err == nil {
		report.TraceHash = hash
	}

	goldenPath := GoldenPath(file)
	switch {
	case opts.Update:
		if err := WriteGolden(goldenPath, scenario.Name, result); err != nil {
			return fail("failed to update golden file: %v", err)
		}
		report.Golden = "updated"
	default:
		if _, err := os.Stat(goldenPath); os.IsNotExist(err) {
			report.Golden = "missing"
			break
		}
		match, err := CompareGolden(goldenPath, scenario.Name, result)
		if err != nil {
			return fail("golden comparison failed: %v", err)
		}
		if !match {
			return fail("trace does not match golden file (run with --update to regenerate)")
		}
		report.Golden = "match"
	}

	report.Pass = result.Pass
	return report
}
