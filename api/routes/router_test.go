package routes

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(_ context.Context) error { return s.err }

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
	}
}

func testRouterLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestHealthzOK(t *testing.T) {
	router := NewRouter(testRouterConfig(), testRouterLogger(), stubPinger{}, Services{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"env":"test"`)
}

func TestHealthzDatabaseDown(t *testing.T) {
	router := NewRouter(testRouterConfig(), testRouterLogger(), stubPinger{err: errors.New("connection refused")}, Services{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, 502, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := NewRouter(testRouterConfig(), testRouterLogger(), stubPinger{}, Services{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/products", nil)
	req.Header.Set("Origin", "https://www.blumenauautomacao.com.br")
	req.Header.Set("Access-Control-Request-Method", "GET")
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	router := NewRouter(testRouterConfig(), testRouterLogger(), stubPinger{}, Services{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/does-not-exist", nil))

	assert.Equal(t, 404, rec.Code)
}
