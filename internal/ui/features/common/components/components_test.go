package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/table"
	"github.com/konnectpro/konnectpro-gds/internal/ui/controls"
	"github.com/konnectpro/konnectpro-gds/internal/ui/nav"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestToast(t *testing.T) {
	tests := []struct {
		severity  Severity
		wantColor string
		wantIcon  string
	}{
		{SeverityInfo, "bg-primary", "ri-information-line"},
		{SeveritySuccess, "bg-green-600", "ri-check-line"},
		{SeverityWarning, "bg-yellow-600", "ri-alert-triangle-line"},
		{SeverityError, "bg-red-600", "ri-error-warning-line"},
		{Severity("bogus"), "bg-primary", "ri-information-line"},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			toast := NewToast("Destino creado <b>exitosamente</b>", tt.severity)
			html := render(t, Toast(toast))

			assert.True(t, strings.HasPrefix(toast.ID, "toast-"))
			assert.Contains(t, html, `id="`+toast.ID+`"`)
			assert.Contains(t, html, tt.wantColor)
			assert.Contains(t, html, tt.wantIcon)
			assert.Contains(t, html, "el.remove(), 3000")
			assert.Contains(t, html, "Destino creado &lt;b&gt;exitosamente&lt;/b&gt;")
		})
	}

	assert.NotEqual(t, NewToast("a", SeverityInfo).ID, NewToast("a", SeverityInfo).ID)
}

func TestTableBody(t *testing.T) {
	tbl := table.New("destinationsTable", "Destinos", "ID", "Ciudad", "Acciones")
	tbl.Append(table.Row{ID: 1, Kind: "destination", Cells: []table.Cell{{Text: "1"}, {Text: "Santiago"}, {Markup: `<button class="x">Ver</button>`}}})
	tbl.Append(table.Row{ID: 2, Kind: "destination", Cells: table.TextCells("2", "Temuco", "")})
	table.Filter(tbl, "santiago")

	html := render(t, TableBody(tbl))

	assert.Contains(t, html, `<tbody id="destinationsTableBody"`)
	assert.Contains(t, html, `<button class="x">Ver</button>`, "markup is rendered as is")
	assert.Equal(t, 1, strings.Count(html, `style="display: none"`))
	assert.Contains(t, html, `data-id="2" data-kind="destination" style="display: none"`)
	assert.Contains(t, html, `data-search-term="santiago"`, "body echoes the term it was filtered with")
}

func TestTableBody_Empty(t *testing.T) {
	html := render(t, TableBody(table.New("boardingStagesTable", "Etapas", "País", "Ciudad")))
	assert.Contains(t, html, "Sin registros")
	assert.Contains(t, html, `colspan="2"`)
}

func TestTableHeader(t *testing.T) {
	create := &controls.Action{ID: "createDestination", Label: "Crear Nuevo Destino", Icon: "ri-add-line", URL: "/modals/destinationCreateModal/open"}
	h := controls.Header{
		TableID: "destinationsTable",
		Title:   "Destinos",
		Search:  &controls.SearchBox{InputID: "destinationsTableSearch", Placeholder: "Buscar en Destinos...", URL: "/tables/destinationsTable/search"},
		Actions: []controls.Action{
			*create,
			{ID: "destinationsTableExport", Label: "Exportar CSV", Icon: "ri-download-line", URL: "/tables/destinationsTable/export?filename=destinos", Kind: controls.ActionDownload, Class: "export-csv-button"},
		},
	}

	html := render(t, TableHeader(h))

	title := strings.Index(html, "Destinos</h3>")
	search := strings.Index(html, `id="destinationsTableSearch"`)
	createAt := strings.Index(html, `id="createDestination"`)
	export := strings.Index(html, `id="destinationsTableExport"`)
	require.True(t, title >= 0 && search >= 0 && createAt >= 0 && export >= 0, html)
	assert.Less(t, title, search)
	assert.Less(t, search, createAt)
	assert.Less(t, createAt, export)

	assert.Contains(t, html, `data-bind="destinationsTableSearch"`)
	assert.Contains(t, html, `data-on:input="@get(&#39;/tables/destinationsTable/search&#39;, {requestCancellation: &#39;auto&#39;})"`)
	assert.NotContains(t, html, "__debounce", "every keystroke searches")
	assert.Contains(t, html, `href="/tables/destinationsTable/export?filename=destinos"`)
	assert.Contains(t, html, "export-csv-button")
}

func TestAppShell_OneVisiblePage(t *testing.T) {
	router := nav.NewRouter(nil, nil)
	router.ShowPage(string(nav.PageDestinations))

	app := AppData{Menu: router.MenuItems(), SidebarIcon: router.SidebarIcon()}
	for _, p := range router.Pages() {
		pv := PageView{Page: p, Visible: router.Visible(p.ID)}
		if p.ID != nav.PageDashboard {
			pv.Section = &SectionView{
				Header: controls.Header{TableID: string(p.ID) + "Table", Title: p.Title},
				Table:  table.New(string(p.ID)+"Table", p.Title, "A"),
			}
		}
		app.Pages = append(app.Pages, pv)
	}

	html := render(t, AppShell(app))

	assert.Equal(t, len(app.Pages), strings.Count(html, `class="page-content`))
	assert.Equal(t, len(app.Pages)-1, strings.Count(html, `class="page-content hidden"`))
	assert.Contains(t, html, `id="destinations-content" class="page-content"`)
	assert.Contains(t, html, `id="menu-destinations"`)
	assert.Equal(t, 1, strings.Count(html, "menu-item flex items-center gap-3 px-3 py-2 rounded text-sm hover:bg-gray-100 active"))
	assert.Contains(t, html, nav.IconSidebarClosed)
}

func TestPage(t *testing.T) {
	html := render(t, Page("Dashboard", true, AppData{}))

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<title>Dashboard - KonnectPro-GDS</title>")
	assert.Contains(t, html, `data-init="@get('/updates')"`)
	assert.Contains(t, html, `id="toasts"`)
	assert.Contains(t, html, `id="modals"`)
	assert.Contains(t, html, "/reload")
	assert.Contains(t, html, "/static/app.js")

	assert.NotContains(t, render(t, Page("Dashboard", false, AppData{})), "/reload")
}

func TestRecordForm(t *testing.T) {
	schema, _ := catalog.SchemaFor(catalog.KindDestinationMapping)
	html := render(t, RecordForm(FormModal{
		ID:      "destinationMappingCreateModal",
		Title:   "Crear Mapeo de Destino",
		Schema:  schema,
		Values:  map[string]string{"travel": "Turbus", "apiCity": "STGO"},
		Invalid: map[string]bool{"ourCity": true},
		Action:  "@post('/records/destination-mapping')",
		Submit:  "Guardar",
	}))

	assert.Contains(t, html, `<div id="modals">`)
	assert.Contains(t, html, `id="destinationMappingCreateModal"`)
	assert.Contains(t, html, `data-bind="form.apiCity"`)
	assert.Contains(t, html, `<option value="Turbus" selected>`)
	assert.Contains(t, html, `value="STGO"`)
	assert.Equal(t, 1, strings.Count(html, " invalid\""))
	assert.Contains(t, html, `id="destinationMappingCreateModal-ourCity" name="ourCity" class="w-full border border-gray-300 rounded p-2 text-sm invalid"`)
	assert.Contains(t, html, "el.focus(), 100")
	assert.Contains(t, html, "/modals/destinationMappingCreateModal/close")
}

func TestDetail(t *testing.T) {
	html := render(t, Detail(DetailModal{
		ID:    "destinationDetailModal",
		Title: "Detalles del destino",
		Items: []DetailItem{{Label: "Ciudad", Value: "Santiago"}, {Label: "Aliases", Value: " "}},
	}))

	assert.Contains(t, html, "Detalles del destino")
	assert.Contains(t, html, "Ciudad:")
	assert.Contains(t, html, "Santiago")
	assert.Contains(t, html, `<span class="text-gray-900">-</span>`)
	assert.Contains(t, html, "Cerrar")
}

func TestSearch(t *testing.T) {
	schema, _ := catalog.SchemaFor(catalog.KindDestination)
	var fields []catalog.Field
	for _, f := range schema.Fields {
		if f.Searchable {
			fields = append(fields, f)
		}
	}

	html := render(t, Search(SearchModal{ID: "destinationSearchModal", Title: "Búsqueda de Destinos", Fields: fields, Action: "@post('/search/destination')"}))

	assert.Contains(t, html, "Búsqueda de Destinos")
	assert.Contains(t, html, `data-bind="search.city"`)
	assert.Contains(t, html, `placeholder="Buscar por ciudad"`)
	assert.Contains(t, html, "Seleccionar País")
	assert.NotContains(t, html, "search.wikipedia")
}

func TestRowActions(t *testing.T) {
	html := render(t, RowActions(ActionGroup{
		DOMName: "destination",
		URL:     "/records/destination/7",
		Confirm: "¿Está seguro de que desea eliminar este destino?",
	}))

	assert.Contains(t, html, `class="show-destination text-gray-500 hover:text-primary"`)
	assert.Contains(t, html, `class="edit-destination text-gray-500 hover:text-primary"`)
	assert.Contains(t, html, `data-on:click="@get(&#39;/records/destination/7/edit&#39;)"`)
	assert.Contains(t, html, `confirm(&#39;¿Está seguro de que desea eliminar este destino?&#39;) &amp;&amp; @delete(&#39;/records/destination/7&#39;)`)
	assert.Equal(t, 3, strings.Count(html, "<button"))
}
