package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newRouter(p Pinger) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(p, slog.New(slog.NewTextHandler(io.Discard, nil))))
	return r
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	newRouter(pingFunc(func(context.Context) error { return nil })).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"healthy"`)
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newRouter(pingFunc(func(context.Context) error { return nil })).
			ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"database":"ok"`)
	})

	t.Run("database down", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newRouter(pingFunc(func(context.Context) error { return errors.New("connection refused") })).
			ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "connection refused")
	})
}
