package commands

import (
	"github.com/spf13/cobra"

	"github.com/konnectpro/konnectpro-gds/internal/table"
	"github.com/konnectpro/konnectpro-gds/internal/ui/workspace"
)

// TablesOptions holds options for the tables command.
type TablesOptions struct {
	Search string
}

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	opts := &TablesOptions{}

	cmd := &cobra.Command{
		Use:   "tables <page>",
		Short: "Print the table of a data page",
		Long: `Print the rows of a data page's table, optionally filtered by the same
case-insensitive search the dashboard's search box applies.`,
		Example: `  # All destinations
  konnectpro tables destinations

  # Mappings mentioning Turbus, as JSON
  konnectpro tables destination-mappings --search turbus -o json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePages,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Only show rows containing this term")

	return cmd
}

func runTables(cmd *cobra.Command, page string, opts *TablesOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := loadPageTable(cmd.Context(), cmdCtx.Store, page)
	if err != nil {
		return err
	}

	shown := table.Filter(t, opts.Search)
	cmdCtx.Logger.Debug("table filtered", "table", t.ID, "term", opts.Search, "shown", shown)

	// The actions column only holds buttons
	columns := t.Columns()
	width := len(columns)
	if width > 0 && columns[width-1] == workspace.ActionsColumn {
		width--
	}

	var rows [][]string
	for _, row := range t.VisibleRows() {
		values := make([]string, 0, width)
		for i := 0; i < width && i < len(row.Cells); i++ {
			values = append(values, table.CellText(row.Cells[i]))
		}
		rows = append(rows, values)
	}

	return cmdCtx.Renderer.Table(columns[:width], rows)
}
