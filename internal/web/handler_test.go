package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-anokye-davies/glance/internal/analyzer"
	"github.com/benedict-anokye-davies/glance/internal/appdetect"
	"github.com/benedict-anokye-davies/glance/internal/config"
	"github.com/benedict-anokye-davies/glance/internal/contextbuilder"
	"github.com/benedict-anokye-davies/glance/internal/events"
	"github.com/benedict-anokye-davies/glance/internal/models"
)

func newTestMux(t *testing.T) (*http.ServeMux, *contextbuilder.Builder) {
	t.Helper()

	cfg := config.Default()
	cfg.Analysis.OCREnabled = false
	// No capture source: on-demand analysis reports a skipped cycle.
	a := analyzer.New(cfg, nil, nil, nil, appdetect.New(nil), events.NewBus())
	builder := contextbuilder.New(10)

	mux := http.NewServeMux()
	NewHandler(a, builder, nil).SetupRoutes(mux)
	return mux, builder
}

func TestContextEndpointBeforeAnyUpdate(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/context", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no context available", body["summary"])
}

func TestContextEndpointWithState(t *testing.T) {
	mux, builder := newTestMux(t)
	builder.UpdateApp(&models.ApplicationContext{AppName: "Code", Type: models.AppTypeIDE})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/context", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var ctx models.ConversationContext
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ctx))
	require.NotNil(t, ctx.ActiveApp)
	assert.Equal(t, "Code", ctx.ActiveApp.AppName)
	assert.Contains(t, ctx.Summary, "The user is using Code (ide).")
}

func TestContextQueryEndpoint(t *testing.T) {
	mux, builder := newTestMux(t)
	builder.UpdateAnalysis(&models.ScreenAnalysisResult{
		App:      &models.ApplicationContext{AppName: "Code", Type: models.AppTypeIDE},
		Entities: []models.Entity{{Type: "file", Value: "main.go"}},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/context/query?q=which+file", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "which file", body["query"])
	assert.Contains(t, body["summary"], "Visible files: main.go")
}

func TestHistoryEndpointEmpty(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestAnalyzeEndpointSkipsWithoutSource(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "skipped", body["status"])
}

func TestAnalyzeEndpointRejectsGet(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestReportEndpointWithoutPersistence(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report?period=day", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, false, status["running"])
	assert.EqualValues(t, 0, status["history_size"])
	assert.NotContains(t, status, "last_analysis")
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
