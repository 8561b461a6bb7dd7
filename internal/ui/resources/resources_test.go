package resources

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_ServesAssets(t *testing.T) {
	h := Handler()

	tests := []struct {
		asset    string
		contains string
	}{
		{asset: Stylesheet, contains: ".invalid"},
		{asset: Script, contains: "keydown"},
	}

	for _, tt := range tests {
		t.Run(tt.asset, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, StaticPath(tt.asset), nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestHandler_MissingAsset(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.js", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
