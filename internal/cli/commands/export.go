package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/konnectpro/konnectpro-gds/internal/table"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Output string
	Dated  bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <page>",
		Short: "Export the table of a data page as CSV",
		Long: `Export every row of a data page's table as CSV, exactly as the dashboard's
"Exportar CSV" button does. Output goes to stdout unless --file is given.`,
		Example: `  # Print destinations as CSV
  konnectpro export destinations

  # Write boarding stages to etapas_de_abordaje_<date>.csv
  konnectpro export boarding-stages --dated`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePages,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "file", "f", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.Dated, "dated", false, "Write to <table>_<YYYY-MM-DD>.csv in the current directory")

	return cmd
}

func runExport(cmd *cobra.Command, page string, opts *ExportOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := loadPageTable(cmd.Context(), cmdCtx.Store, page)
	if err != nil {
		return err
	}

	path := opts.Output
	if path == "" && opts.Dated {
		path = table.Filename(table.Slug(t.Label), time.Now())
	}

	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		f, err := os.Create(path) //nolint:gosec // path is chosen by the user
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := table.WriteCSV(w, t); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if path == "" {
		_, _ = fmt.Fprintln(w)
		return nil
	}

	cmdCtx.Renderer.Info("Exported %d rows to %s", len(t.Body), path)
	return nil
}
