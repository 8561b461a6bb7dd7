// Package main provides tests for the KonnectPro-GDS CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/konnectpro/konnectpro-gds/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "KonnectPro-GDS") {
		t.Errorf("version output should contain 'KonnectPro-GDS', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	expectedCommands := []string{"serve", "tables", "export", "version", "completion"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestTablesCommandJSON(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"tables", "destinations", "--search", "méxico", "--output", "json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("tables command error = %v", err)
	}

	if !strings.Contains(out.String(), `"Ciudad": "Guadalajara"`) {
		t.Errorf("tables output should list Guadalajara, got: %s", out.String())
	}
	if strings.Contains(out.String(), "Santiago") {
		t.Errorf("tables output should be filtered, got: %s", out.String())
	}
}
