package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dev16mehta/ToolBelt-AI/internal/store"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

type mockKeyStore struct {
	created   *models.APIKey
	keys      []*models.APIKey
	listErr   error
	createErr error
	revokeErr error
	revokedID uuid.UUID
}

func (m *mockKeyStore) Ping(ctx context.Context) error { return nil }
func (m *mockKeyStore) GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error) {
	return nil, nil
}
func (m *mockKeyStore) UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error { return nil }
func (m *mockKeyStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = key
	return nil
}
func (m *mockKeyStore) ListAPIKeys(ctx context.Context) ([]*models.APIKey, error) {
	return m.keys, m.listErr
}
func (m *mockKeyStore) RevokeAPIKey(ctx context.Context, id uuid.UUID) error {
	if m.revokeErr != nil {
		return m.revokeErr
	}
	m.revokedID = id
	return nil
}

func TestCreateKeyHandler_Success(t *testing.T) {
	s := &mockKeyStore{}
	h := NewCreateKeyHandler(s)

	body := `{"name": "ci-pipeline", "scopes": ["estimate", "admin"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/keys", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, s.created)

	var resp struct {
		Data struct {
			Key       string   `json:"key"`
			KeyPrefix string   `json:"key_prefix"`
			Name      string   `json:"name"`
			Scopes    []string `json:"scopes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "ci-pipeline", resp.Data.Name)
	assert.Equal(t, []string{"estimate", "admin"}, resp.Data.Scopes)
	assert.True(t, strings.HasPrefix(resp.Data.Key, "tb_"))
	assert.Equal(t, resp.Data.Key[:8], resp.Data.KeyPrefix)

	// Only the hash is persisted, and it must verify against the raw key.
	assert.NotContains(t, s.created.KeyHash, resp.Data.Key)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(s.created.KeyHash), []byte(resp.Data.Key)))
}

func TestCreateKeyHandler_DefaultScopes(t *testing.T) {
	s := &mockKeyStore{}
	h := NewCreateKeyHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/keys", strings.NewReader(`{"name": "reader"}`))
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"estimate"}, s.created.Scopes)
}

func TestCreateKeyHandler_MissingName(t *testing.T) {
	h := NewCreateKeyHandler(&mockKeyStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/keys", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestListKeysHandler(t *testing.T) {
	s := &mockKeyStore{
		keys: []*models.APIKey{
			{ID: uuid.New(), Name: "a", KeyPrefix: "tb_aaaaa"},
			{ID: uuid.New(), Name: "b", KeyPrefix: "tb_bbbbb"},
		},
	}
	h := NewListKeysHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/keys", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.APIKey `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestListKeysHandler_EmptyIsArray(t *testing.T) {
	h := NewListKeysHandler(&mockKeyStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/keys", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func revokeVia(h http.HandlerFunc, keyID string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Delete("/api/v1/admin/keys/{keyID}", h)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/keys/"+keyID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRevokeKeyHandler_Success(t *testing.T) {
	s := &mockKeyStore{}
	id := uuid.New()

	rec := revokeVia(NewRevokeKeyHandler(s), id.String())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, s.revokedID)
}

func TestRevokeKeyHandler_NotFound(t *testing.T) {
	s := &mockKeyStore{revokeErr: store.ErrNotFound}

	rec := revokeVia(NewRevokeKeyHandler(s), uuid.NewString())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESOURCE_NOT_FOUND")
}

func TestRevokeKeyHandler_BadID(t *testing.T) {
	rec := revokeVia(NewRevokeKeyHandler(&mockKeyStore{}), "not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
