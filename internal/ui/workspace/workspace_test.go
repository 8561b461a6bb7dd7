package workspace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/testutil"
	"github.com/konnectpro/konnectpro-gds/internal/ui/nav"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!")), testutil.NewTestLogger(t))
}

// roundTrip saves ws and returns a request carrying the resulting cookie.
func roundTrip(t *testing.T, ws *Workspace, r *http.Request) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, ws.Save(rec, r))

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestManager_LoadFreshSession(t *testing.T) {
	m := newTestManager(t)

	ws := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, nav.PageDashboard, ws.Router.CurrentPage())
	assert.False(t, ws.Router.IsSidebarOpen())
	assert.Empty(t, ws.Controls.Bindings())
	assert.NotEmpty(t, ws.ID)
	assert.NotEqual(t, ws.ID, m.Load(httptest.NewRequest(http.MethodGet, "/", nil)).ID)
}

func TestWorkspace_SaveAndLoad(t *testing.T) {
	m := newTestManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	ws := m.Load(req)
	ws.Router.ShowPage(string(nav.PageBoardingStages))
	ws.Router.OpenSidebar()

	restored := m.Load(roundTrip(t, ws, req))

	assert.Equal(t, ws.ID, restored.ID, "session keeps its id")

	assert.Equal(t, nav.PageBoardingStages, restored.Router.CurrentPage())
	assert.True(t, restored.Router.IsSidebarOpen())

	b, ok := restored.Controls.Binding("boardingStagesTable")
	require.True(t, ok, "binding survives the session")
	assert.Equal(t, "etapas_de_abordaje", b.Filename)
	assert.Equal(t, "boardingStagesTableSearch", b.SearchInputID)
}

func TestWorkspace_SaveDetached(t *testing.T) {
	ws := newTestManager(t).New()
	assert.Error(t, ws.Save(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestManager_LoadMalformedWorkspace(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	m := NewManager(store, testutil.NewTestLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := store.Get(req, sessionName)
	require.NoError(t, err)
	sess.Values[sessionKey] = "{not json"

	rec := httptest.NewRecorder()
	require.NoError(t, sess.Save(req, rec))
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}

	ws := m.Load(next)
	assert.Equal(t, nav.PageDashboard, ws.Router.CurrentPage())
}

func TestSections(t *testing.T) {
	for id, kind := range tableKinds {
		section, ok := Sections{}.Section(id)
		require.True(t, ok, id)
		require.NotNil(t, section.Header)
		require.NotNil(t, section.Header.Create)
		assert.Equal(t, "/modals/"+kind.DOMName()+"CreateModal/open", section.Header.Create.URL)

		got, ok := TableForKind(kind)
		require.True(t, ok)
		assert.Equal(t, id, got)
	}

	_, ok := Sections{}.Section("ticketsTable")
	assert.False(t, ok)
}

func TestCreateButtonID(t *testing.T) {
	assert.Equal(t, "createDestination", CreateButtonID(catalog.KindDestination))
	assert.Equal(t, "createBoardingMapping", CreateButtonID(catalog.KindBoardingMapping))
}

func TestBuildTable(t *testing.T) {
	recs := []catalog.Record{
		{ID: 1638, Kind: catalog.KindDestination, Values: map[string]string{"country": "Chile", "city": "Santiago"}},
	}

	tbl := BuildTable("destinationsTable", "Destinos", catalog.KindDestination, recs)

	cols := tbl.Columns()
	assert.Equal(t, "ID", cols[0])
	assert.Equal(t, "País", cols[1])
	assert.Equal(t, ActionsColumn, cols[len(cols)-1])

	require.Len(t, tbl.Body, 1)
	row := tbl.Body[0]
	assert.True(t, row.Visible)
	assert.Equal(t, "destination", row.Kind)
	assert.Equal(t, "1638", row.Cells[0].Text)
	assert.Equal(t, "Santiago", row.Cells[ColumnIndex(catalog.KindDestination, "city")].Text)
	assert.Contains(t, row.Cells[len(row.Cells)-1].Markup, "@delete(&#39;/records/destination/1638&#39;)")
	assert.True(t, strings.Contains(row.Cells[len(row.Cells)-1].Markup, `class="actions`))
}

func TestColumnIndex(t *testing.T) {
	assert.Equal(t, 0, ColumnIndex(catalog.KindBoardingStage, "country"), "boarding stages hide the id")
	assert.Equal(t, 1, ColumnIndex(catalog.KindDestination, "country"))
	assert.Equal(t, -1, ColumnIndex(catalog.KindDestination, "nope"))
}

func TestLoadTable(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(catalog.MemoryDSN))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, catalog.DefaultSeed().Apply(ctx, store))

	tbl, err := LoadPageTable(ctx, store, string(nav.PageDestinations))
	require.NoError(t, err)
	assert.Equal(t, "destinationsTable", tbl.ID)
	assert.Equal(t, "Destinos", tbl.Label)
	assert.Len(t, tbl.Body, len(catalog.DefaultSeed().Destinations))

	_, err = LoadPageTable(ctx, store, string(nav.PageDashboard))
	assert.Error(t, err)

	_, err = LoadTable(ctx, store, "ticketsTable")
	assert.Error(t, err)
}
