// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnectpro/konnectpro-gds/internal/cli/config"
	"github.com/konnectpro/konnectpro-gds/internal/cli/output"
	"github.com/konnectpro/konnectpro-gds/internal/cli/testutil"
)

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"port", "host", "seed-file", "watch", "dev", "no-browser"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewTablesCommand(t *testing.T) {
	cmd := NewTablesCommand()

	assert.Equal(t, "tables <page>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("search"))

	pages, _ := completePages(cmd, nil, "")
	assert.Equal(t, []string{"destinations", "destination-mappings", "boarding-stages", "boarding-mappings"}, pages)
}

func TestTablesCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "all rows",
			args:     []string{"destinations"},
			contains: []string{"Santiago", "Temuco", "Guadalajara", "(4 rows)"},
			excludes: []string{"Acciones", "Eliminar"},
		},
		{
			name:     "filtered",
			args:     []string{"destinations", "--search", "TEMUCO"},
			contains: []string{"Temuco", "(1 rows)"},
			excludes: []string{"Guadalajara"},
		},
		{
			name:     "table id",
			args:     []string{"boardingMappingsTable"},
			contains: []string{"STGO-TS", "(2 rows)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewTablesCommand(), tt.args...)
			require.NoError(t, err)

			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestTablesCommand_UnknownPage(t *testing.T) {
	_, err := execute(t, NewTablesCommand(), "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hint: use one of destinations")
}

func TestExportCommand_Stdout(t *testing.T) {
	out, err := execute(t, NewExportCommand(), "destination-mappings")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, "ID,Operador,Ciudad API,Nuestra Ciudad,Acciones", lines[0])
	assert.Len(t, lines, 4)
	assert.Equal(t, "1,Turbus,SANTIAGO,Santiago,", lines[1])
}

func TestExportCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	out, err := execute(t, NewExportCommand(), "boarding-stages", "--file", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "País,Estado,Ciudad,Terminal/Ubicación"))
	assert.Contains(t, string(data), "Terminal Rodoviario")
}

func TestExportCommand_Dated(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := execute(t, NewExportCommand(), "boarding-stages", "--dated")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "etapas_de_abordaje_*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestTablesCommand_SeedFileFromConfig(t *testing.T) {
	testutil.SetupTestProject(t)
	t.Cleanup(config.ResetConfig)

	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)

	out, err := execute(t, NewTablesCommand(), "destinations")
	require.NoError(t, err)

	assert.Contains(t, out, "Puerto Montt")
	assert.NotContains(t, out, "Santiago", "the seed file replaces the embedded data")
	testutil.AssertNoANSI(t, out)
}

func TestRenderPageTable(t *testing.T) {
	store, err := openCatalog(context.Background(), config.Default().Catalog, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	tbl, err := loadPageTable(context.Background(), store, "boarding-mappings")
	require.NoError(t, err)

	tr := testutil.NewTestRenderer(output.ModeMarkdown, false)
	require.NoError(t, tr.Table(tbl.Columns(), [][]string{{"1", "Turbus", "Terminal Sur", "STGO-TS"}}))

	testutil.AssertNoANSI(t, tr.Output())
	assert.Contains(t, tr.Output(), "Etapa API")
}

func TestOpenCatalog_MissingSeedFile(t *testing.T) {
	_, err := openCatalog(context.Background(), config.CatalogConfig{DSN: ":memory:", SeedFile: "missing.yaml"}, slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}
