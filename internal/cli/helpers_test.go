package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/lorenz/internal/testutil"
)

const (
	trainingPatterns    = "../../testdata/patterns/training.cue"
	trainingFingerprint = "c44d5fc43cdfc2d55d670058bf2dd31cc4ebb5d06abe2fbca52458976504992b"
	testRunID           = "run-test-0001"
)

// isolate keeps the caller's home directory and LORENZ_* variables out of
// the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{"LORENZ_CONFIG", "LORENZ_PATTERNS", "LORENZ_SETTING", "LORENZ_FORMAT", "LORENZ_OUTPUT"} {
		t.Setenv(name, "")
	}
}

// execute runs the root command with args and a fixed run id.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	cmd := newRootCommand(testutil.NewFixedRunID(testRunID))
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// decodeResponse parses a JSON envelope, decoding Data into data when given.
func decodeResponse(t *testing.T, stdout string, data any) CLIResponse {
	t.Helper()
	var raw struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &raw), "stdout: %s", stdout)
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.CLIResponse
}

// widePatterns writes a YAML patterns file whose psi group carries six
// wheels, one more than a symbol holds.
func widePatterns(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wide.yaml")
	content := `setting:
  wide:
    chi: ["+.", ".+", "+.", ".+", "+."]
    psi: ["+", ".", ".", ".", ".", "."]
    mu: ["+"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
