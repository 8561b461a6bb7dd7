package records

import (
	"context"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/testutil"
	"github.com/konnectpro/konnectpro-gds/internal/ui/features"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	handlers := NewHandlers(fixture.Store, fixture.Workspaces, fixture.Notifier, testutil.NewTestLogger(t))
	return handlers, fixture
}

func countEvents(body string) int {
	return strings.Count(body, "event:")
}

// =============================================================================
// Search and Export
// =============================================================================

func TestSearch(t *testing.T) {
	tests := []struct {
		name       string
		term       any
		wantHidden int
	}{
		{name: "empty term shows everything", term: "", wantHidden: 0},
		{name: "missing signal shows everything", term: nil, wantHidden: 0},
		{name: "case insensitive match", term: "SANTIAGO", wantHidden: 3},
		{name: "accented match", term: "concepción", wantHidden: 3},
		{name: "no match hides all rows", term: "zzz", wantHidden: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			signals := map[string]any{}
			if tt.term != nil {
				signals["destinationsTableSearch"] = tt.term
			}
			req := features.DatastarRequest(t, http.MethodGet, "/tables/destinationsTable/search", signals)
			req = features.RequestWithPathParam(req, "table", "destinationsTable")
			rec := httptest.NewRecorder()

			h.Search(rec, req)

			body := rec.Body.String()
			assert.Contains(t, body, `id="destinationsTableBody"`)
			assert.Equal(t, tt.wantHidden, strings.Count(body, `style="display: none"`))
		})
	}
}

func TestSearch_UnknownTable(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.DatastarRequest(t, http.MethodGet, "/tables/ticketsTable/search", nil)
	req = features.RequestWithPathParam(req, "table", "ticketsTable")
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	assert.Equal(t, 0, countEvents(rec.Body.String()))
}

func TestExport(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/tables/destinationMappingsTable/export?filename=mapeo_de_destinos", nil)
	req = features.RequestWithPathParam(req, "table", "destinationMappingsTable")
	rec := httptest.NewRecorder()

	h.Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, "text/csv;charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=mapeo_de_destinos_`+today+`.csv`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(rec.Body.String(), "\n")
	assert.Equal(t, "ID,Operador,Ciudad API,Nuestra Ciudad,Acciones", lines[0])
	assert.Len(t, lines, 1+len(catalog.DefaultSeed().DestinationMappings))
	assert.False(t, strings.HasSuffix(rec.Body.String(), "\n"))
	assert.NotContains(t, rec.Body.String(), "Eliminar", "action buttons never reach the export")
}

func TestExport_DefaultFilename(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/tables/boardingStagesTable/export", nil), "table", "boardingStagesTable")
	rec := httptest.NewRecorder()

	h.Export(rec, req)

	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename=export_`)
}

func TestExport_FilenameIsEscaped(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	tests := []struct {
		name string
		base string
	}{
		{name: "quote and separator", base: `destinos"; filename="evil`},
		{name: "non ascii", base: "etapas_de_señal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			target := "/tables/destinationsTable/export?filename=" + url.QueryEscape(tt.base)
			req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, target, nil), "table", "destinationsTable")
			rec := httptest.NewRecorder()

			h.Export(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			disposition, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
			require.NoError(t, err)
			assert.Equal(t, "attachment", disposition)
			assert.Equal(t, tt.base+"_"+today+".csv", params["filename"])
		})
	}
}

func TestExport_UnknownTable(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/tables/nope/export", nil), "table", "nope")
	rec := httptest.NewRecorder()

	h.Export(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

// =============================================================================
// Modals
// =============================================================================

func TestParseModalID(t *testing.T) {
	tests := []struct {
		id   string
		want ModalRef
		ok   bool
	}{
		{"destinationCreateModal", ModalRef{catalog.KindDestination, ModalCreate}, true},
		{"destinationMappingEditModal", ModalRef{catalog.KindDestinationMapping, ModalEdit}, true},
		{"boardingStageSearchModal", ModalRef{catalog.KindBoardingStage, ModalSearch}, true},
		{"boardingMappingDetailModal", ModalRef{catalog.KindBoardingMapping, ModalDetail}, true},
		{"destinationModal", ModalRef{}, false},
		{"ticketCreateModal", ModalRef{}, false},
		{"", ModalRef{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := ParseModalID(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.Equal(t, tt.id, got.ID())
			}
		})
	}
}

func TestOpenModal(t *testing.T) {
	tests := []struct {
		id         string
		wantEvents bool
		want       []string
	}{
		{id: "boardingStageCreateModal", wantEvents: true, want: []string{`id="boardingStageCreateModal"`, "Crear Etapa de Embarque", `data-bind="form.terminal"`, `"form":{`}},
		{id: "destinationSearchModal", wantEvents: true, want: []string{`id="destinationSearchModal"`, "Búsqueda de Destinos", `"search":{`}},
		{id: "destinationEditModal", wantEvents: false},
		{id: "unknownModal", wantEvents: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			req := features.RequestWithPathParam(httptest.NewRequest(http.MethodPost, "/modals/"+tt.id+"/open", nil), "id", tt.id)
			rec := httptest.NewRecorder()

			h.OpenModal(rec, req)

			body := rec.Body.String()
			if !tt.wantEvents {
				assert.Equal(t, 0, countEvents(body), "no patch for %s", tt.id)
				return
			}
			for _, want := range tt.want {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestCloseModal(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodPost, "/modals/destinationCreateModal/close", nil), "id", "destinationCreateModal")
	rec := httptest.NewRecorder()
	h.CloseModal(rec, req)
	assert.Contains(t, rec.Body.String(), `<div id="modals"></div>`)

	req = features.RequestWithPathParam(httptest.NewRequest(http.MethodPost, "/modals/nope/close", nil), "id", "nope")
	rec = httptest.NewRecorder()
	h.CloseModal(rec, req)
	assert.Equal(t, 0, countEvents(rec.Body.String()))
}

// =============================================================================
// Records
// =============================================================================

func TestCreate(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	before, err := fixture.Store.Count(context.Background(), catalog.KindDestinationMapping)
	require.NoError(t, err)

	req := features.DatastarRequest(t, http.MethodPost, "/records/destination-mapping", map[string]any{
		"form": map[string]any{"travel": "Turbus", "apiCity": "VALDIVIA", "ourCity": " Valdivia "},
	})
	req = features.RequestWithPathParam(req, "kind", "destination-mapping")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "Mapeo de destino creado exitosamente")
	assert.Contains(t, body, "Nueva fila agregada a la tabla de mapeo de destinos")
	assert.Contains(t, body, `<div id="modals"></div>`, "modal closed")
	assert.Contains(t, body, `id="destinationMappingsTableBody"`)
	assert.Contains(t, body, "VALDIVIA")

	after, err := fixture.Store.Count(context.Background(), catalog.KindDestinationMapping)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	recs, err := fixture.Store.List(context.Background(), catalog.KindDestinationMapping)
	require.NoError(t, err)
	assert.Equal(t, "Valdivia", recs[len(recs)-1].Value("ourCity"), "values are trimmed")
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := features.DatastarRequest(t, http.MethodPost, "/records/destination-mapping", map[string]any{
		"form": map[string]any{"travel": "Turbus", "apiCity": ""},
	})
	req = features.RequestWithPathParam(req, "kind", "destination-mapping")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "Por favor complete todos los campos requeridos")
	assert.Contains(t, body, "bg-red-600")
	assert.Equal(t, 2, strings.Count(body, ` invalid"`), "apiCity and ourCity are marked")
	assert.Contains(t, body, `id="destinationMappingCreateModal"`, "form stays open")

	n, err := fixture.Store.Count(context.Background(), catalog.KindDestinationMapping)
	require.NoError(t, err)
	assert.Equal(t, len(catalog.DefaultSeed().DestinationMappings), n)
}

func TestCreate_UnknownKind(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(features.DatastarRequest(t, http.MethodPost, "/records/ticket", nil), "kind", "ticket")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreate_NotifiesOtherSessions(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	other := fixture.Notifier.Subscribe("someone-else")
	defer fixture.Notifier.Unsubscribe(other)

	req := features.DatastarRequest(t, http.MethodPost, "/records/boarding-mapping", map[string]any{
		"form": map[string]any{"travel": "Turbus", "ourStage": "Terminal Sur", "apiStage": "TS-01"},
	})
	h.Create(httptest.NewRecorder(), features.RequestWithPathParam(req, "kind", "boarding-mapping"))

	select {
	case <-other:
	case <-time.After(100 * time.Millisecond):
		t.Error("other session was not notified")
	}
}

func TestShow(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/records/destination/1638", nil), "kind", "destination", "id", "1638")
	rec := httptest.NewRecorder()

	h.Show(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "Detalles del destino")
	assert.Contains(t, body, `id="destinationDetailModal"`)
	assert.Contains(t, body, "ID:")
	assert.Contains(t, body, "1638")
	assert.Contains(t, body, "Santiago")
}

func TestShow_NotFound(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/records/destination/9", nil), "kind", "destination", "id", "9")
	rec := httptest.NewRecorder()

	h.Show(rec, req)

	assert.Contains(t, rec.Body.String(), "Destino no encontrado")
}

func TestShow_InvalidID(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/records/destination/abc", nil), "kind", "destination", "id", "abc")
	rec := httptest.NewRecorder()

	h.Show(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEdit(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/records/destination/1639/edit", nil), "kind", "destination", "id", "1639")
	rec := httptest.NewRecorder()

	h.Edit(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, `id="destinationEditModal"`)
	assert.Contains(t, body, "Editar Destino")
	assert.Contains(t, body, `"city":"Temuco"`, "form signals carry the stored values")
	assert.Contains(t, body, "@put(&#39;/records/destination/1639&#39;)")
}

func TestUpdate(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	form := map[string]any{}
	rec0, err := fixture.Store.Get(context.Background(), catalog.KindDestination, 1639)
	require.NoError(t, err)
	for k, v := range rec0.Values {
		form[k] = v
	}
	form["region"] = "Araucanía"

	req := features.DatastarRequest(t, http.MethodPut, "/records/destination/1639", map[string]any{"form": form})
	req = features.RequestWithPathParam(req, "kind", "destination", "id", "1639")
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	assert.Contains(t, rec.Body.String(), "Destino actualizado exitosamente")

	got, err := fixture.Store.Get(context.Background(), catalog.KindDestination, 1639)
	require.NoError(t, err)
	assert.Equal(t, "Araucanía", got.Value("region"))
}

func TestUpdate_MissingRecord(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := features.DatastarRequest(t, http.MethodPut, "/records/boarding-mapping/77", map[string]any{
		"form": map[string]any{"travel": "Turbus", "ourStage": "A", "apiStage": "B"},
	})
	req = features.RequestWithPathParam(req, "kind", "boarding-mapping", "id", "77")
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	assert.Contains(t, rec.Body.String(), "Mapeo de embarque no encontrado")
}

func TestDelete(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := features.DatastarRequest(t, http.MethodDelete, "/records/destination/1640", map[string]any{"destinationsTableSearch": "chile"})
	req = features.RequestWithPathParam(req, "kind", "destination", "id", "1640")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "Destino eliminado exitosamente")
	assert.NotContains(t, body, "Concepción")
	assert.Contains(t, body, `id="dashboardStats"`)
	assert.Equal(t, 1, strings.Count(body, `style="display: none"`), "live filter still applies to the re-rendered table")

	_, err := fixture.Store.Get(context.Background(), catalog.KindDestination, 1640)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

// =============================================================================
// Advanced Search
// =============================================================================

func TestAdvancedSearch(t *testing.T) {
	tests := []struct {
		name       string
		search     map[string]any
		wantCount  string
		wantHidden int
	}{
		{name: "no filters", search: map[string]any{"country": "", "city": ""}, wantCount: "Búsqueda realizada con 0 filtros", wantHidden: 0},
		{name: "one filter", search: map[string]any{"country": "méxico"}, wantCount: "Búsqueda realizada con 1 filtros", wantHidden: 3},
		{name: "two filters", search: map[string]any{"country": "Chile", "city": "tem"}, wantCount: "Búsqueda realizada con 2 filtros", wantHidden: 3},
		{name: "unknown field is not counted", search: map[string]any{"country": "Chile", "ticket": "A123"}, wantCount: "Búsqueda realizada con 1 filtros", wantHidden: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestHandlers(t)

			req := features.DatastarRequest(t, http.MethodPost, "/search/destination", map[string]any{"search": tt.search})
			req = features.RequestWithPathParam(req, "kind", "destination")
			rec := httptest.NewRecorder()

			h.AdvancedSearch(rec, req)

			body := rec.Body.String()
			assert.Contains(t, body, tt.wantCount)
			assert.Contains(t, body, `<div id="modals"></div>`)
			assert.Equal(t, tt.wantHidden, strings.Count(body, `style="display: none"`))
		})
	}
}

func TestAdvancedSearch_LogsUnknownField(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	logger, logs := testutil.NewCaptureLogger(t)
	h := NewHandlers(fixture.Store, fixture.Workspaces, fixture.Notifier, logger)

	req := features.DatastarRequest(t, http.MethodPost, "/search/destination", map[string]any{"search": map[string]any{"ticket": "A123"}})
	req = features.RequestWithPathParam(req, "kind", "destination")
	rec := httptest.NewRecorder()

	h.AdvancedSearch(rec, req)

	assert.Contains(t, rec.Body.String(), "Búsqueda realizada con 0 filtros")
	assert.Contains(t, logs.String(), "search on unknown field")
	assert.Contains(t, logs.String(), "field=ticket")
}

func TestSignals(t *testing.T) {
	s := Signals{
		"destinationsTableSearch": "sur",
		"form":                    map[string]any{"latitude": -36.82, "travel": "Turbus", "count": float64(3), "none": nil},
	}

	assert.Equal(t, "sur", s.SearchTerm("destinationsTable"))
	assert.Equal(t, "", s.String("missing"))
	assert.Equal(t, map[string]string{"latitude": "-36.82", "travel": "Turbus", "count": "3", "none": ""}, s.Object("form"))
	assert.Empty(t, s.Object("missing"))
}
