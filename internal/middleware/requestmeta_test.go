package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ghulam-Abbas-65/QR/internal/middleware"
	"github.com/Ghulam-Abbas-65/QR/internal/tracker"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOutput struct {
	Body string `json:"body"`
}

func setupTestAPI(t *testing.T) (*chi.Mux, huma.API) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(api))

	return router, api
}

func TestRequestMeta(t *testing.T) {
	t.Run("captures tracking headers into the context", func(t *testing.T) {
		router, api := setupTestAPI(t)

		metaChan := make(chan tracker.RequestMeta, 1)

		huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
			metaChan <- tracker.RequestMetaFromContext(ctx)

			return &testOutput{Body: "ok"}, nil
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("User-Agent", "TestAgent/1.0")
		req.Header.Set("Referer", "https://example.com")
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		req.Header.Set("X-Client-IP", "198.51.100.9")
		req.Header.Set("CF-Connecting-IP", "192.0.2.1")
		req.Header.Set("X-Real-IP", "192.0.2.2")

		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		meta := <-metaChan
		assert.Equal(t, "TestAgent/1.0", meta.UserAgent)
		assert.Equal(t, "https://example.com", meta.Referrer)
		assert.Equal(t, "203.0.113.7, 10.0.0.1", meta.ForwardedFor)
		assert.Equal(t, "198.51.100.9", meta.ClientIPHeader)
		assert.Equal(t, "192.0.2.1", meta.CFConnectingIP)
		assert.Equal(t, "192.0.2.2", meta.RealIP)
	})

	t.Run("leaves absent headers empty", func(t *testing.T) {
		router, api := setupTestAPI(t)

		metaChan := make(chan tracker.RequestMeta, 1)

		huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
			metaChan <- tracker.RequestMetaFromContext(ctx)

			return &testOutput{Body: "ok"}, nil
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Del("User-Agent")

		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		meta := <-metaChan
		assert.Empty(t, meta.ForwardedFor)
		assert.Empty(t, meta.ClientIPHeader)
		assert.Empty(t, meta.Referrer)
	})
}
