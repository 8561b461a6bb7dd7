package workspace

import (
	"context"
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/table"
	"github.com/konnectpro/konnectpro-gds/internal/ui/features/common/components"
	"github.com/konnectpro/konnectpro-gds/internal/ui/nav"
)

// ActionsColumn is the label of the trailing column holding the row actions.
const ActionsColumn = "Acciones"

// BuildTable projects recs into the table model of kind. Columns follow the
// schema, preceded by the id when the schema shows it and followed by the row
// actions.
func BuildTable(tableID, label string, kind catalog.Kind, recs []catalog.Record) *table.Table {
	schema, _ := catalog.SchemaFor(kind)

	cols := make([]string, 0, len(schema.Fields)+2)
	if schema.ShowID {
		cols = append(cols, "ID")
	}
	for _, f := range schema.Fields {
		cols = append(cols, f.Label)
	}
	cols = append(cols, ActionsColumn)

	t := table.New(tableID, label, cols...)
	for _, rec := range recs {
		cells := make([]table.Cell, 0, len(cols))
		if schema.ShowID {
			cells = append(cells, table.Cell{Text: strconv.FormatInt(rec.ID, 10)})
		}
		for _, f := range schema.Fields {
			cells = append(cells, table.Cell{Text: rec.Value(f.Name)})
		}
		cells = append(cells, table.Cell{Markup: actionsMarkup(kind, rec.ID)})

		t.Append(table.Row{ID: rec.ID, Kind: string(kind), Cells: cells})
	}
	return t
}

// ColumnIndex returns the table column showing field of kind, or -1.
func ColumnIndex(kind catalog.Kind, field string) int {
	schema, ok := catalog.SchemaFor(kind)
	if !ok {
		return -1
	}
	i := schema.Index(field)
	if i < 0 {
		return -1
	}
	if schema.ShowID {
		i++
	}
	return i
}

// LoadTable lists the records shown in tableID and builds its table model.
func LoadTable(ctx context.Context, store catalog.Store, tableID string) (*table.Table, error) {
	kind, ok := KindForTable(tableID)
	if !ok {
		return nil, fmt.Errorf("unknown table %q", tableID)
	}

	label := tableID
	if page, ok := nav.PageForTable(tableID); ok {
		ref, _ := nav.TableFor(string(page))
		label = ref.Label
	}

	recs, err := store.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	return BuildTable(tableID, label, kind, recs), nil
}

// LoadPageTable builds the table shown on page.
func LoadPageTable(ctx context.Context, store catalog.Store, page string) (*table.Table, error) {
	ref, ok := nav.TableFor(page)
	if !ok {
		return nil, fmt.Errorf("page %q has no table", page)
	}
	return LoadTable(ctx, store, ref.TableID)
}

// RecordURL returns the endpoint of a single record.
func RecordURL(kind catalog.Kind, id int64) string {
	return "/records/" + string(kind) + "/" + strconv.FormatInt(id, 10)
}

func actionsMarkup(kind catalog.Kind, id int64) string {
	html, err := templ.ToGoHTML(context.Background(), components.RowActions(components.ActionGroup{
		DOMName: kind.DOMName(),
		URL:     RecordURL(kind, id),
		Confirm: "¿Está seguro de que desea eliminar este " + kind.Noun() + "?",
	}))
	if err != nil {
		return ""
	}
	return string(html)
}
