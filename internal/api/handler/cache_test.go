package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/revenue-dashboard-api/pkg/apiErrors"
)

type fakeReloader struct {
	accept   bool
	triggers int
}

func (f *fakeReloader) TriggerManualSync() bool {
	f.triggers++
	return f.accept
}

func (f *fakeReloader) GetStatus() map[string]any {
	return map[string]any{"sync_running": !f.accept}
}

func TestReloadCache(t *testing.T) {
	tests := []struct {
		name       string
		accept     bool
		wantStatus int
	}{
		{name: "recarga aceita", accept: true, wantStatus: http.StatusAccepted},
		{name: "recarga já em andamento", accept: false, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reloader := &fakeReloader{accept: tt.accept}
			rt := router.New(router.WithRoutes(Cache(reloader)...))

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cache/reload", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, 1, reloader.triggers)
		})
	}
}

func TestGetCacheStatus(t *testing.T) {
	rt := router.New(router.WithRoutes(Cache(&fakeReloader{accept: true})...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cache/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sync_running": false}`, rec.Body.String())
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	rt := router.New(router.WithRoutes(Cache(&fakeReloader{})...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nada", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cache/reload", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apiErrors.ErrMethodNotAllowed, body.Code)
}
