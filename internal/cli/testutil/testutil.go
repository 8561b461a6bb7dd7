// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/konnectpro/konnectpro-gds/internal/cli/output"
)

// TestSeed is a small seed file with one record of every kind.
const TestSeed = `destinations:
  - id: 7
    country: "Chile"
    state: "Los Lagos"
    city: "Puerto Montt"
    status: "Activo"
    priority: "YES"
    region: "Sur"
destination_mappings:
  - id: 1
    travel: "Turbus"
    apiCity: "PTO MONTT"
    ourCity: "Puerto Montt"
boarding_stages:
  - id: 1
    country: "Chile"
    city: "Puerto Montt"
    terminal: "Terminal Puerto Montt"
boarding_mappings:
  - id: 1
    travel: "Turbus"
    ourStage: "Terminal Puerto Montt"
    apiStage: "PMC-01"
`

// SetupTestProject creates a temporary project directory holding seed.yaml and
// a konnectpro.yaml pointing at it, and switches into it for the test.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "seed.yaml"), []byte(TestSeed), 0o600); err != nil {
		t.Fatalf("failed to create seed.yaml: %v", err)
	}

	cfg := "catalog:\n  seed_file: seed.yaml\nui:\n  auto_open: false\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "konnectpro.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatalf("failed to create konnectpro.yaml: %v", err)
	}

	t.Chdir(tmpDir)
	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
