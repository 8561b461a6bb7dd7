// Package features provides shared test utilities for UI feature tests.
package features

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/konnectpro/konnectpro-gds/internal/catalog"
	"github.com/konnectpro/konnectpro-gds/internal/testutil"
	"github.com/konnectpro/konnectpro-gds/internal/ui/notifier"
	"github.com/konnectpro/konnectpro-gds/internal/ui/workspace"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store        *catalog.SQLiteStore
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Workspaces   *workspace.Manager

	t *testing.T
}

// SetupTestFixture creates a complete test fixture: an in-memory catalog loaded
// with the default seed, a notifier and a cookie session store.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)
	store := SetupTestStore(t)
	require.NoError(t, catalog.DefaultSeed().Apply(context.Background(), store))

	sessionStore := NewTestSessionStore()
	return &TestFixture{
		Store:        store,
		Notifier:     notifier.New(),
		SessionStore: sessionStore,
		Workspaces:   workspace.NewManager(sessionStore, logger),
		t:            t,
	}
}

// SetupTestStore creates an empty in-memory catalog.
// Use this when a handler test needs full control over the records.
func SetupTestStore(t *testing.T) *catalog.SQLiteStore {
	t.Helper()

	store := catalog.NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(catalog.MemoryDSN))
	require.NoError(t, store.Migrate())

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// WithWorkspace returns r carrying a session whose workspace was prepared by
// setup, as if earlier requests had produced it.
func (f *TestFixture) WithWorkspace(r *http.Request, setup func(ws *workspace.Workspace)) *http.Request {
	f.t.Helper()

	seed := httptest.NewRequest(http.MethodGet, "/", nil)
	ws := f.Workspaces.Load(seed)
	if setup != nil {
		setup(ws)
	}

	rec := httptest.NewRecorder()
	require.NoError(f.t, ws.Save(rec, seed))
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

// LoadWorkspace returns the workspace stored in the session cookies set on rec.
func (f *TestFixture) LoadWorkspace(rec *httptest.ResponseRecorder) *workspace.Workspace {
	f.t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return f.Workspaces.Load(r)
}

// DatastarRequest builds a Datastar request carrying signals. GET requests send
// them in the datastar query parameter, others as a JSON body.
func DatastarRequest(t *testing.T, method, target string, signals any) *http.Request {
	t.Helper()

	var body io.Reader
	if signals == nil {
		signals = map[string]any{}
	}
	data, err := json.Marshal(signals)
	require.NoError(t, err)

	if method == http.MethodGet {
		u, err := url.Parse(target)
		require.NoError(t, err)
		q := u.Query()
		q.Set("datastar", string(data))
		u.RawQuery = q.Encode()
		target = u.String()
	} else {
		body = bytes.NewReader(data)
	}

	r := httptest.NewRequest(method, target, body)
	r.Header.Set("Datastar-Request", "true")
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
