package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml", "notes.txt", "sub/c.yaml", "golden/a.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}

	files, err := FindScenarios(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yml"),
		filepath.Join(dir, "sub", "c.yaml"),
	}, files)

	files, err = FindScenarios(dir, "[ab]")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = FindScenarios(dir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestPatternsNotFoundError_ErrorMessage(t *testing.T) {
	err := &PatternsNotFoundError{Scenario: "s", Path: "/x/wheels.cue"}
	assert.Equal(t, `scenario "s" references patterns file "/x/wheels.cue" which does not exist`, err.Error())
}

func TestRunSuite_SharedScenarios(t *testing.T) {
	suite, err := New(zerolog.Nop()).RunSuite("../../testdata/scenarios", SuiteOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, suite.Total)
	assert.Equal(t, 3, suite.Passed, "%+v", suite.Scenarios)
	assert.Zero(t, suite.Failed)
	for _, s := range suite.Scenarios {
		assert.True(t, s.Pass, "%s: %v", s.Name, s.Errors)
		assert.Equal(t, "match", s.Golden, s.Name)
		assert.Len(t, s.TraceHash, 64)
	}
}

// copySuite copies one shared scenario into a temp dir laid out like
// testdata, so golden files can be rewritten freely.
func copySuite(t *testing.T, name string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range []string{
		filepath.Join("scenarios", name+".yaml"),
		filepath.Join("patterns", "training.cue"),
	} {
		data, err := os.ReadFile(filepath.Join("../../testdata", rel))
		require.NoError(t, err)
		dst := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))
		require.NoError(t, os.WriteFile(dst, data, 0644))
	}
	return filepath.Join(root, "scenarios")
}

func TestRunSuite_UpdateThenMatch(t *testing.T) {
	dir := copySuite(t, "bletchley_park")
	h := New(zerolog.Nop())

	suite, err := h.RunSuite(dir, SuiteOptions{})
	require.NoError(t, err)
	require.Len(t, suite.Scenarios, 1)
	assert.Equal(t, "missing", suite.Scenarios[0].Golden)
	assert.True(t, suite.Scenarios[0].Pass)

	suite, err = h.RunSuite(dir, SuiteOptions{Update: true})
	require.NoError(t, err)
	assert.Equal(t, "updated", suite.Scenarios[0].Golden)

	written, err := os.ReadFile(filepath.Join(dir, "golden", "bletchley_park.golden"))
	require.NoError(t, err)
	shared, err := os.ReadFile("../../testdata/scenarios/golden/bletchley_park.golden")
	require.NoError(t, err)
	assert.Equal(t, string(shared), string(written))

	suite, err = h.RunSuite(dir, SuiteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "match", suite.Scenarios[0].Golden)
	assert.Equal(t, 1, suite.Passed)
}

func TestRunSuite_GoldenMismatchFails(t *testing.T) {
	dir := copySuite(t, "bletchley_park")
	golden := filepath.Join(dir, "golden", "bletchley_park.golden")
	require.NoError(t, os.MkdirAll(filepath.Dir(golden), 0755))
	require.NoError(t, os.WriteFile(golden, []byte(`{"stale":true}`), 0644))

	suite, err := New(zerolog.Nop()).RunSuite(dir, SuiteOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, suite.Failed)
	assert.False(t, suite.Scenarios[0].Pass)
	assert.Contains(t, suite.Scenarios[0].Errors[0], "does not match golden file")
}

func TestRunSuite_LoadFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: broken\n"), 0644))

	suite, err := New(zerolog.Nop()).RunSuite(dir, SuiteOptions{})
	require.NoError(t, err)
	require.Len(t, suite.Scenarios, 1)
	assert.Equal(t, "broken.yaml", suite.Scenarios[0].Name)
	assert.False(t, suite.Scenarios[0].Pass)
	assert.Contains(t, suite.Scenarios[0].Errors[0], "failed to load scenario")
}
