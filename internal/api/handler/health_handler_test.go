package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := newEcho()
	c, rec := jsonContext(e, http.MethodGet, "/health", "")

	require.NoError(t, NewHealthHandler().Liveness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]DependencyCheck
		wantStatus int
		wantBody   string
	}{
		{
			name:       "all healthy",
			checks:     map[string]DependencyCheck{"mongo": ok, "redis": ok},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:       "redis down",
			checks:     map[string]DependencyCheck{"mongo": ok, "redis": down},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			c, rec := jsonContext(e, http.MethodGet, "/health/ready", "")

			require.NoError(t, NewHealthDependenciesHandler(tt.checks).Readiness(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp readinessResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp.Status)
			assert.Len(t, resp.Dependencies, 2)
		})
	}
}
