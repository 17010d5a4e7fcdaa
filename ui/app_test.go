package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modboard/adapters/api"
	"modboard/adapters/excel"
	"modboard/app"
	"modboard/domain/stats"
	"modboard/internal/config"
	"modboard/internal/metrics"
	"modboard/internal/preferences"
	"modboard/internal/report"
	"modboard/internal/testkit"
)

var testNow = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

type harness struct {
	app  *App
	fake *testkit.FakeAPI
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := testkit.NewFakeAPI(testNow)
	upstream := httptest.NewServer(fake.Handler())
	t.Cleanup(upstream.Close)

	reg := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(reg)
	client := api.NewClient(config.APIConfig{BaseURL: upstream.URL + "/api/v1", Timeout: 2 * time.Second}, recorder, nil)

	theme, err := preferences.Open(filepath.Join(t.TempDir(), "prefs.yaml"))
	require.NoError(t, err)

	statsService := app.NewStatsService(client, nil)
	exporter := &report.Exporter{Now: func() time.Time { return testNow }}

	a := NewApp(Services{
		Listings:   app.NewListingService(client, nil),
		Moderation: app.NewModerationService(client, nil),
		Loaders:    app.NewStatsLoaders(statsService, recorder, nil),
		Dashboards: statsService,
		Exports:    app.NewExportService(exporter, excel.NewWorkbookWriter(), recorder, nil),
		Theme:      theme,
		Metrics:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Now:        func() time.Time { return testNow },
	})
	return &harness{app: a, fake: fake}
}

func (h *harness) do(method, target string, body string) *httptest.ResponseRecorder {
	return h.doAs("tab-1", method, target, body)
}

// doAs sends a request on behalf of a dashboard client; an empty client
// sends no id header.
func (h *harness) doAs(client, method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	if client != "" {
		req.Header.Set(ClientIDHeader, client)
	}
	rec := httptest.NewRecorder()
	h.app.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStatsEndpoint(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/stats?period=week", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var d stats.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.True(t, d.HasData)
	assert.Equal(t, 100, d.Export.TotalReviewed)
	assert.Len(t, d.Activity, 7)
}

func TestStatsEndpoint_UpstreamFailure(t *testing.T) {
	h := newHarness(t)
	h.fake.FailOn(testkit.EndpointCategories, http.StatusInternalServerError, `{"error":"Не удалось загрузить категории"}`)

	rec := h.do(http.MethodGet, "/api/stats?period=month", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Не удалось загрузить категории","code":"EXTERNAL_SERVICE_ERROR"}`, rec.Body.String())
}

func TestStatsEndpoint_BadPeriod(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/api/stats?period=year", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_UsesCurrentSnapshot(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/export/csv", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/stats?period=week", "").Code)

	rec = h.do(http.MethodGet, "/api/export/csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentTypeCSV, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "7_дней;100;70;20;10;5 мин")
}

func TestStats_ClientsLoadConcurrently(t *testing.T) {
	h := newHarness(t)
	h.fake.Delay(testkit.EndpointSummary, 150*time.Millisecond)

	var (
		wg    sync.WaitGroup
		first *httptest.ResponseRecorder
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = h.doAs("moderator-a", http.MethodGet, "/api/stats?period=month", "")
	}()
	time.Sleep(20 * time.Millisecond)

	second := h.doAs("moderator-b", http.MethodGet, "/api/stats?period=week", "")
	wg.Wait()

	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())

	var month, week stats.Dashboard
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &month))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &week))
	assert.Equal(t, stats.PeriodMonth, month.Period)
	assert.Equal(t, stats.PeriodWeek, week.Period)
}

func TestExport_CurrentSnapshotIsPerClient(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, http.StatusOK, h.doAs("moderator-a", http.MethodGet, "/api/stats?period=week", "").Code)
	require.Equal(t, http.StatusOK, h.doAs("moderator-b", http.MethodGet, "/api/stats?period=today", "").Code)

	rec := h.doAs("moderator-a", http.MethodGet, "/api/export/csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "7_дней;100;70;20;10;5 мин")

	rec = h.doAs("moderator-b", http.MethodGet, "/api/export/csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\nсегодня;12;")

	rec = h.doAs("moderator-c", http.MethodGet, "/api/export/csv", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStats_IssuesClientCookie(t *testing.T) {
	h := newHarness(t)

	rec := h.doAs("", http.MethodGet, "/api/stats?period=week", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == ClientCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
	req.AddCookie(cookie)
	export := httptest.NewRecorder()
	h.app.Handler().ServeHTTP(export, req)
	require.Equal(t, http.StatusOK, export.Code)
	assert.Contains(t, export.Body.String(), "7_дней;100;")
}

func TestExport_ExplicitPeriod(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/export/detailed?period=today", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentTypeDetailed, rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\ufeffОТЧЕТ ПО МОДЕРАЦИИ ОБЪЯВЛЕНИЙ"))

	rec = h.do(http.MethodGet, "/api/export/xlsx?period=month", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = h.do(http.MethodGet, "/api/export/docx?period=month", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListingsAndDecisions(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/listings?limit=3&sortBy=price&sortOrder=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Ads        []map[string]any `json:"ads"`
		TotalItems int              `json:"totalItems"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Ads, 3)
	assert.Equal(t, 24, page.TotalItems)

	rec = h.do(http.MethodPost, "/api/listings/4/reject", `{"reasons":["Другое"],"custom":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPost, "/api/listings/4/request-changes", `{"reasons":["Некорректное описание"],"comment":"добавьте размеры"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ad, ok := h.fake.Ad(4)
	require.True(t, ok)
	assert.Equal(t, "draft", string(ad.Status))

	rec = h.do(http.MethodPost, "/api/listings/4/approve", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/api/listings/4/view", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Одобрено", view["status"])
	assert.Len(t, view["history"], 2)

	rec = h.do(http.MethodGet, "/api/listings/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodGet, "/api/listings/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThemePreference(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/preferences/theme", "")
	assert.JSONEq(t, `{"theme":"light"}`, rec.Body.String())

	rec = h.do(http.MethodPut, "/api/preferences/theme", `{"theme":"dark"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"theme":"dark"}`, rec.Body.String())

	rec = h.do(http.MethodPost, "/api/preferences/theme/toggle", "")
	assert.JSONEq(t, `{"theme":"light"}`, rec.Body.String())

	rec = h.do(http.MethodPut, "/api/preferences/theme", `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaticEndpoints(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/healthz", "").Code)

	rec := h.do(http.MethodGet, "/api/reasons", "")
	assert.Contains(t, rec.Body.String(), "Проблемы с фото")

	rec = h.do(http.MethodGet, "/api/categories", "")
	assert.Contains(t, rec.Body.String(), "Недвижимость")

	h.do(http.MethodGet, "/api/stats?period=today", "")
	rec = h.do(http.MethodGet, "/metrics", "")
	assert.Contains(t, rec.Body.String(), "modboard_upstream_request_duration_seconds")
}
