// Package table holds the presentational model behind every managed table in the
// dashboard: ordered rows of cell values with a transient visibility flag. The
// search filter and the CSV serializer operate on this model, and the HTML layer
// is a projection of it.
package table

// Cell is a single table cell.
type Cell struct {
	// Text is the plain value of the cell.
	Text string
	// Markup is optional rich HTML rendered instead of Text (action buttons,
	// badges, links). Action elements inside it never reach an export.
	Markup string
}

// Row is an ordered sequence of cells.
type Row struct {
	ID      int64
	Kind    string // explicit record tag, set when the row is built
	Cells   []Cell
	Visible bool
}

// Table is a managed table: header rows followed by body rows, in document order.
type Table struct {
	ID    string
	Label string
	Head  []Row
	Body  []Row
	// Term is the search term the body's visibility was last computed for.
	Term string
}

// New creates a table with a single header row built from the given column labels.
func New(id, label string, columns ...string) *Table {
	t := &Table{ID: id, Label: label}
	if len(columns) > 0 {
		t.Head = []Row{{Cells: TextCells(columns...), Visible: true}}
	}
	return t
}

// Append adds a visible body row.
func (t *Table) Append(row Row) {
	row.Visible = true
	t.Body = append(t.Body, row)
}

// Rows returns every row in document order, header rows first.
func (t *Table) Rows() []Row {
	rows := make([]Row, 0, len(t.Head)+len(t.Body))
	rows = append(rows, t.Head...)
	return append(rows, t.Body...)
}

// VisibleRows returns the body rows currently visible.
func (t *Table) VisibleRows() []Row {
	var rows []Row
	for _, r := range t.Body {
		if r.Visible {
			rows = append(rows, r)
		}
	}
	return rows
}

// Columns returns the labels of the first header row.
func (t *Table) Columns() []string {
	if len(t.Head) == 0 {
		return nil
	}
	cols := make([]string, len(t.Head[0].Cells))
	for i, c := range t.Head[0].Cells {
		cols[i] = c.Text
	}
	return cols
}

// TextCells builds plain-text cells.
func TextCells(values ...string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = Cell{Text: v}
	}
	return cells
}
