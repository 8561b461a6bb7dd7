package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnectpro/konnectpro-gds/internal/testutil"
	"github.com/konnectpro/konnectpro-gds/internal/ui/features"
)

func setupTestRouter(t *testing.T, isDev bool) http.Handler {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	r := chi.NewMux()
	require.NoError(t, SetupRoutes(r, fixture.Store, fixture.SessionStore, fixture.Notifier, testutil.NewTestLogger(t), isDev))
	return r
}

func TestSetupRoutes(t *testing.T) {
	r := setupTestRouter(t, false)

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/static/app.css", http.StatusOK},
		{http.MethodGet, "/tables/destinationsTable/export", http.StatusOK},
		{http.MethodGet, "/tables/nope/export", http.StatusNotFound},
		{http.MethodPost, "/records/ticket/", http.StatusNotFound},
		{http.MethodGet, "/records/destination/abc", http.StatusBadRequest},
		{http.MethodGet, "/reload", http.StatusNotFound},
		{http.MethodPut, "/nav/destinations", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSetupRoutes_HotReload(t *testing.T) {
	r := setupTestRouter(t, true)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hotreload", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
