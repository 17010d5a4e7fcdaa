package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modboard/domain/core"
	"modboard/domain/moderation"
	"modboard/domain/stats"
	"modboard/internal/config"
	"modboard/internal/errors"
	"modboard/internal/metrics"
	"modboard/internal/testkit"
)

func newTestClient(t *testing.T) (*Client, *testkit.FakeAPI) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := testkit.NewFakeAPI(time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC))
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	cfg := config.APIConfig{BaseURL: srv.URL + "/api/v1/", Timeout: 2 * time.Second, Token: "secret"}
	return NewClient(cfg, metrics.NewRecorder(prometheus.NewRegistry()), nil), fake
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message wins", `{"message":"Объявление заблокировано","error":"x"}`, "Объявление заблокировано"},
		{"error fallback", `{"error":"Ad not found"}`, "Ad not found"},
		{"blank message", `{"message":"  ","error":"Нет доступа"}`, "Нет доступа"},
		{"non-string message", `{"message":42}`, errors.GenericAPIMessage},
		{"not json", `<html>502</html>`, errors.GenericAPIMessage},
		{"empty", ``, errors.GenericAPIMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage([]byte(tt.body)))
		})
	}
}

func TestListAds(t *testing.T) {
	c, fake := newTestClient(t)

	page, err := c.ListAds(context.Background(), moderation.ListingQuery{
		Page:     1,
		Limit:    5,
		Statuses: []moderation.Status{moderation.StatusPending},
	}.Normalize())
	require.NoError(t, err)

	assert.Len(t, page.Ads, 5)
	assert.Equal(t, 6, page.TotalItems)
	for _, ad := range page.Ads {
		assert.Equal(t, moderation.StatusPending, ad.Status)
	}
	assert.NotEmpty(t, fake.LastRequestID(testkit.EndpointAds))
}

func TestGetAd_NotFound(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.GetAd(context.Background(), core.ListingID(404))
	require.Error(t, err)
	assert.Equal(t, errors.CodeExternalService, errors.GetCode(err))
	assert.Equal(t, "Ad not found", errors.UserMessage(err))
	assert.True(t, core.IsNotFoundError(err))
}

func TestRejectSendsDecision(t *testing.T) {
	c, fake := newTestClient(t)

	err := c.Reject(context.Background(), 2, moderation.Decision{Reason: "Неверная категория", Comment: "см. правила"})
	require.NoError(t, err)

	ad, ok := fake.Ad(2)
	require.True(t, ok)
	assert.Equal(t, moderation.StatusRejected, ad.Status)
	require.Len(t, ad.ModerationHistory, 1)
	assert.Equal(t, "см. правила", ad.ModerationHistory[0].Comment)
}

func TestStatsEndpoints(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	summary, err := c.Summary(ctx, stats.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, 100, summary.TotalReviewed)

	activity, err := c.Activity(ctx, stats.PeriodWeek)
	require.NoError(t, err)
	assert.Len(t, activity, 7)

	decisions, err := c.Decisions(ctx, stats.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, 70, decisions.Approved)

	categories, err := c.Categories(ctx, stats.PeriodWeek)
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	assert.Equal(t, "Электроника", categories[0].Category)
}

func TestUpstreamFailureMessage(t *testing.T) {
	c, fake := newTestClient(t)
	fake.FailOn(testkit.EndpointDecisions, http.StatusBadGateway, `{"message":"Сервис статистики недоступен"}`)

	_, err := c.Decisions(context.Background(), stats.PeriodToday)
	require.Error(t, err)
	assert.Equal(t, "Сервис статистики недоступен", errors.UserMessage(err))
}

func TestCanceledContext(t *testing.T) {
	c, fake := newTestClient(t)
	fake.Delay(testkit.EndpointSummary, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.Summary(ctx, stats.PeriodWeek)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.IsAppError(err))
}

func TestAuthorizationHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"approved":1,"rejected":0,"requestChanges":0}`))
	}))
	defer srv.Close()

	c := NewClient(config.APIConfig{BaseURL: srv.URL, Token: "t0k"}, nil, nil)
	_, err := c.Decisions(context.Background(), stats.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, "Bearer t0k", got)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestWithHTTPClient(t *testing.T) {
	var seen []string
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = append(seen, r.URL.Path)
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"error":"Ad not found"}`)),
			Request:    r,
		}, nil
	})

	c := NewClient(config.APIConfig{BaseURL: "http://moderation.invalid/api/v1"}, nil, nil).
		WithHTTPClient(&http.Client{Transport: transport})

	_, err := c.GetAd(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, []string{"/api/v1/ads/9"}, seen)
	assert.True(t, core.IsNotFoundError(err))
	assert.Equal(t, "Ad not found", errors.UserMessage(err))
}
