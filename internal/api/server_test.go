package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocopula/app"
	"gocopula/internal/reorder"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := app.NewReorderService(reorder.NewReorderer(), nil, nil)
	return NewServer(svc, nil)
}

func TestHandleReorder(t *testing.T) {
	server := newTestServer(t)

	body := `{
		"marginals": {"variables": [{"key": "x", "samples": [5, 1, 3]}]},
		"copula_samples": {"variables": [{"key": "x", "samples": [0.2, 0.9, 0.5]}]}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reorder", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var resp reorderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Output.Variables, 1)
	assert.Equal(t, []float64{1, 5, 3}, resp.Output.Variables[0].Samples)
	require.NotNil(t, resp.Manifest)
	assert.Equal(t, 1, resp.Manifest.VariableCount)
	assert.Equal(t, 3, resp.Manifest.SampleCount)
}

func TestHandleReorderTiedCopulaColumn(t *testing.T) {
	server := newTestServer(t)

	// A constant copula column is valid input; first_wins ranks it 0,1,2,
	// so the output is the sorted marginal column
	body := `{
		"marginals": {"variables": [
			{"key": "x", "samples": [5, 1, 3]},
			{"key": "y", "samples": [9, 7, 8]}
		]},
		"copula_samples": {"variables": [
			{"key": "x", "samples": [0.2, 0.9, 0.5]},
			{"key": "y", "samples": [0.5, 0.5, 0.5]}
		]}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reorder", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	require.NotEmpty(t, rec.Body.Bytes(), "expected a JSON body, not an empty response")

	var resp reorderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Output.Variables, 2)
	assert.Equal(t, []float64{1, 5, 3}, resp.Output.Variables[0].Samples)
	assert.Equal(t, []float64{7, 8, 9}, resp.Output.Variables[1].Samples)
	require.NotNil(t, resp.Manifest)
	require.NotNil(t, resp.Manifest.AchievedDep)
}

func TestHandleReorderShapeMismatch(t *testing.T) {
	server := newTestServer(t)

	body := `{
		"marginals": {"variables": [{"key": "x", "samples": [5, 1, 3]}]},
		"copula_samples": {"variables": [{"key": "x", "samples": [0.2, 0.9, 0.5, 0.4]}]}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reorder", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SHAPE_MISMATCH", resp.Code)
}

func TestHandleReorderBadJSON(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reorder", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp.Code)
}

func TestHandleReorderNonFinite(t *testing.T) {
	server := newTestServer(t)

	// JSON has no NaN literal, so a null sample decodes to 0 and Inf is
	// rejected by the decoder; send an empty column instead to hit the
	// validation path.
	body := `{
		"marginals": {"variables": [{"key": "x", "samples": []}]},
		"copula_samples": {"variables": [{"key": "x", "samples": []}]}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reorder", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp.Code)
}

func TestHandleGetRunNotFound(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/does-not-exist", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListRunsEmpty(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
