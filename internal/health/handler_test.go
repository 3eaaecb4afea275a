package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Ghulam-Abbas-65/QR/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) Ping(_ context.Context) error {
	return s.err
}

func TestHandler_Check(t *testing.T) {
	t.Run("reports ok when all dependencies respond", func(t *testing.T) {
		h := health.NewHandler(&stubChecker{}, &stubChecker{})

		resp, err := h.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Redis)
		assert.Equal(t, "healthy", resp.Body.Postgres)
	})

	t.Run("degrades when redis is down", func(t *testing.T) {
		h := health.NewHandler(&stubChecker{err: errors.New("connection refused")}, &stubChecker{})

		resp, err := h.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Redis)
		assert.Equal(t, "healthy", resp.Body.Postgres)
	})

	t.Run("degrades when postgres is down", func(t *testing.T) {
		h := health.NewHandler(&stubChecker{}, &stubChecker{err: errors.New("connection refused")})

		resp, err := h.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Postgres)
	})
}
