package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func serveHealth(t *testing.T, p Pinger, path string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHealthHandler(p, "test")
	r := gin.New()
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestLiveness(t *testing.T) {
	w := serveHealth(t, fakePinger{err: errors.New("db down")}, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadiness_OK(t *testing.T) {
	w := serveHealth(t, fakePinger{}, "/readyz")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, "ok", resp.Checks["database"])
}

func TestReadiness_NotReady(t *testing.T) {
	w := serveHealth(t, fakePinger{err: errors.New("dial tcp 10.0.0.5:5432: refused")}, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}
