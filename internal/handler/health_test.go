package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmathis/travel-planner/backend/internal/handler"
)

type mockPinger struct {
	ping func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.ping(ctx) }

var _ handler.Pinger = (*mockPinger)(nil)

func TestHealth(t *testing.T) {
	h := handler.NewServer(nil, nil, nil, nil, nil, nil).Routes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestHealthDB(t *testing.T) {
	db := &mockPinger{ping: func(context.Context) error { return nil }}
	h := handler.NewServer(nil, nil, nil, nil, db, nil).Routes()

	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected"}`, rec.Body.String())
}

func TestHealthDB_Unreachable(t *testing.T) {
	db := &mockPinger{ping: func(context.Context) error { return errors.New("connection refused") }}
	h := handler.NewServer(nil, nil, nil, nil, db, nil).Routes()

	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unhealthy","database":"unreachable"}`, rec.Body.String())
}

func TestHealthDB_NotConfigured(t *testing.T) {
	h := handler.NewServer(nil, nil, nil, nil, nil, nil).Routes()

	req := httptest.NewRequest(http.MethodGet, "/health/db", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unhealthy","database":"not configured"}`, rec.Body.String())
}

func TestOpenAPIDocument(t *testing.T) {
	doc := []byte("openapi: 3.0.3\n")
	h := handler.NewServer(nil, nil, nil, nil, nil, doc).Routes()

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(doc), rec.Body.String())
}
