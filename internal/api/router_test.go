package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dev16mehta/ToolBelt-AI/internal/api"
	mw "github.com/dev16mehta/ToolBelt-AI/internal/api/middleware"
	"github.com/dev16mehta/ToolBelt-AI/internal/cache"
	"github.com/dev16mehta/ToolBelt-AI/internal/store"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

type stubStore struct{}

func (s *stubStore) Ping(ctx context.Context) error { return nil }
func (s *stubStore) GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error) {
	return nil, nil
}
func (s *stubStore) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error   { return nil }
func (s *stubStore) ListAPIKeys(ctx context.Context) ([]*models.APIKey, error)    { return nil, nil }
func (s *stubStore) RevokeAPIKey(ctx context.Context, id uuid.UUID) error         { return nil }

type stubCache struct{}

func (c *stubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
func (c *stubCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}
func (c *stubCache) Delete(ctx context.Context, key string) error { return nil }
func (c *stubCache) Ping(ctx context.Context) error               { return nil }
func (c *stubCache) IncrWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return 1, nil
}

func newTestRouter() http.Handler {
	deps := api.Dependencies{
		Auth:      mw.NewAuth(&stubStore{}),
		RateLimit: mw.NewRateLimit(&stubCache{}, 100),
	}
	return api.NewRouter(deps)
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// No handler wired, so the placeholder answers. The point is that
	// it is reachable without credentials.
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestRouter_ProtectedEndpointsRequireAuth(t *testing.T) {
	router := newTestRouter()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/estimate"},
		{http.MethodPost, "/api/v1/predict"},
		{http.MethodGet, "/api/v1/model"},
		{http.MethodPost, "/api/v1/admin/keys"},
		{http.MethodGet, "/api/v1/admin/keys"},
		{http.MethodDelete, "/api/v1/admin/keys/" + uuid.NewString()},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_UnknownRouteReturns404(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

var (
	_ store.Store = (*stubStore)(nil)
	_ cache.Cache = (*stubCache)(nil)
)
