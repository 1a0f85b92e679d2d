package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/RMahshie/basscalc/internal/processing"
	"github.com/RMahshie/basscalc/internal/transfer"
	"github.com/RMahshie/basscalc/pkg/models"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	return newTestAPIWithSweep(t, transfer.DefaultSweep())
}

func newTestAPIWithSweep(t *testing.T, sweep transfer.Sweep) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	svc, err := processing.NewService(nil, nil)
	require.NoError(t, err)
	RegisterRoutes(api, svc, sweep)
	return api
}

func TestRoutes_Parameters(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Get("/api/parameters")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/parameters/Sd")
	require.Equal(t, http.StatusOK, resp.Code)
	var detail models.ParameterDetail
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &detail))
	assert.Equal(t, "Sd", detail.Name)
	assert.Contains(t, detail.Dependents, "Vd")

	resp = api.Patch("/api/parameters/Xmax", map[string]any{"value": 5.0})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &detail))
	assert.Equal(t, 5.0, detail.Value)

	assert.Equal(t, http.StatusConflict, api.Patch("/api/parameters/Vd", map[string]any{"value": 1.0}).Code)
	assert.Equal(t, http.StatusNotFound, api.Get("/api/parameters/Woofer").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, api.Patch("/api/parameters/Xmax", map[string]any{}).Code)

	assert.Equal(t, http.StatusOK, api.Post("/api/parameters/recompute").Code)
	assert.Equal(t, http.StatusOK, api.Post("/api/parameters/reset").Code)
}

func TestRoutes_Responses(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Get("/api/responses/radiator?min=10&max=100&step=10")
	require.Equal(t, http.StatusOK, resp.Code)
	var body models.ResponseCurveBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "radiator", body.Variant)
	assert.Len(t, body.FrequencyData, 10)

	resp = api.Get("/api/responses/impedance?log=true&points=50")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.FrequencyData, 50)

	assert.Equal(t, http.StatusUnprocessableEntity, api.Get("/api/responses/woofer").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, api.Get("/api/responses/radiator?min=300&max=20").Code)

	resp = api.Get("/api/responses/cone/chart")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.HasPrefix(resp.Header().Get("Content-Type"), "text/html"))
}

func TestRoutes_ResponseSweepDefaults(t *testing.T) {
	api := newTestAPIWithSweep(t, transfer.Sweep{Min: 30, Max: 60, Step: 10})

	resp := api.Get("/api/responses/radiator")
	require.Equal(t, http.StatusOK, resp.Code)
	var body models.ResponseCurveBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.FrequencyData, 4)
	assert.Equal(t, 30.0, body.FrequencyData[0].Frequency)
	assert.Equal(t, 60.0, body.FrequencyData[3].Frequency)

	// explicit query values win over the configured ones
	resp = api.Get("/api/responses/radiator?max=40")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.FrequencyData, 2)
	assert.Equal(t, 40.0, body.FrequencyData[1].Frequency)
}

func TestRoutes_NonFiniteCoefficients(t *testing.T) {
	api := newTestAPI(t)

	// a zero box compliance makes α and ψ infinite
	require.Equal(t, http.StatusOK, api.Patch("/api/parameters/Cab", map[string]any{"value": 0.0}).Code)

	resp := api.Get("/api/responses/radiator?min=20&max=40&step=10")
	require.Equal(t, http.StatusOK, resp.Code)
	var body models.ResponseCurveBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.False(t, body.Coefficients.Finite)
	require.Len(t, body.Coefficients.Denominator, transfer.Order+1)
	assert.Nil(t, body.Coefficients.Denominator[transfer.Order])
	assert.Len(t, body.FrequencyData, 3)
	assert.Equal(t, 3, body.Gaps)

	resp = api.Get("/api/responses/radiator/chart?min=20&max=40&step=10")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRoutes_Presets(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Get("/api/presets/current")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/csv", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Body.String(), "# name, value, min, max, precision, unit")

	// no store configured
	assert.Equal(t, http.StatusServiceUnavailable, api.Get("/api/presets").Code)
	assert.Equal(t, http.StatusServiceUnavailable, api.Post("/api/presets/woofer/load").Code)
}

func TestRoutes_Designs(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusBadRequest, api.Post("/api/designs/not-a-uuid/apply").Code)
	assert.Equal(t, http.StatusBadRequest, api.Delete("/api/designs/not-a-uuid").Code)

	// no repository configured
	assert.Equal(t, http.StatusServiceUnavailable, api.Get("/api/designs").Code)
	assert.Equal(t, http.StatusServiceUnavailable, api.Post("/api/designs", map[string]any{"name": "bookshelf"}).Code)
}
