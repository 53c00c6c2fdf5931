package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.err }

func TestHealthHandler_AllHealthy(t *testing.T) {
	h := NewHealthHandler(&mockPinger{}, &mockPinger{}, "1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Status   string            `json:"status"`
			Services map[string]string `json:"services"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Data.Status)
	assert.Equal(t, "ok", resp.Data.Services["database"])
	assert.Equal(t, "ok", resp.Data.Services["cache"])
	assert.Equal(t, "1.0.0", resp.Data.Services["model"])
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	h := NewHealthHandler(&mockPinger{err: errors.New("connection refused")}, &mockPinger{}, "1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "DEGRADED")
	assert.Contains(t, rec.Body.String(), "degraded")
}

func TestHealthHandler_CacheDown(t *testing.T) {
	h := NewHealthHandler(&mockPinger{}, &mockPinger{err: errors.New("redis unreachable")}, "1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
