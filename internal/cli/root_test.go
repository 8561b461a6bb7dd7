package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnectpro/konnectpro-gds/internal/cli/config"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetConfig)

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"version", "serve", "tables", "export", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRootCmd_Version(t *testing.T) {
	out, _, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "KonnectPro-GDS v"+Version)
}

func TestRootCmd_LoadsConfigAndLogs(t *testing.T) {
	out, errOut, err := runRoot(t, "tables", "boarding-mappings", "--log-level", "debug", "-o", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"Etapa API": "STGO-TS"`)
	assert.Contains(t, errOut, "catalog ready", "debug logs go to stderr")
	assert.Equal(t, "debug", config.GetCurrentConfig().Log.Level)
}

func TestRootCmd_LogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "k.log")

	_, _, err := runRoot(t, "tables", "destinations", "--log-level", "debug", "--log-file", logFile)
	require.NoError(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "catalog ready")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	_, _, err := runRoot(t, "tables", "destinations", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "konnectpro")

	_, _, err = runRoot(t, "completion", "tcsh")
	assert.Error(t, err)
}
