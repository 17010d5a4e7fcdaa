// Package testkit runs an in-process fake of the moderation API with
// fixture data, used by tests and by the dev command.
package testkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"modboard/domain/core"
	"modboard/domain/moderation"
	"modboard/domain/stats"
)

// Endpoint names used for failure injection and hit counting
const (
	EndpointAds            = "ads.list"
	EndpointAd             = "ads.get"
	EndpointApprove        = "ads.approve"
	EndpointReject         = "ads.reject"
	EndpointRequestChanges = "ads.request-changes"
	EndpointSummary        = "stats.summary"
	EndpointActivity       = "stats.activity"
	EndpointDecisions      = "stats.decisions"
	EndpointCategories     = "stats.categories"
)

// Failure is a canned error response
type Failure struct {
	Status int
	Body   string
}

// FakeAPI serves /api/v1 the way the moderation backend does
type FakeAPI struct {
	mu       sync.Mutex
	now      func() time.Time
	ads      map[core.ListingID]*moderation.Advertisement
	stats    map[stats.Period]PeriodStats
	failures map[string]Failure
	delays   map[string]time.Duration
	hits     map[string]int
	reqIDs   map[string]string
	nextHist int64

	router *gin.Engine
}

// NewFakeAPI builds a fake seeded with 24 ads and stats ending at anchor
func NewFakeAPI(anchor time.Time) *FakeAPI {
	f := &FakeAPI{
		now:      time.Now,
		ads:      make(map[core.ListingID]*moderation.Advertisement),
		stats:    FixtureStats(anchor),
		failures: make(map[string]Failure),
		delays:   make(map[string]time.Duration),
		hits:     make(map[string]int),
		reqIDs:   make(map[string]string),
		nextHist: 1,
	}
	for _, ad := range FixtureAds(24, anchor) {
		f.ads[ad.ID] = &ad
	}

	r := gin.New()
	r.Use(gin.Recovery())
	v1 := r.Group("/api/v1")
	{
		v1.GET("/ads", f.endpoint(EndpointAds, f.listAds))
		v1.GET("/ads/:id", f.endpoint(EndpointAd, f.getAd))
		v1.POST("/ads/:id/approve", f.endpoint(EndpointApprove, f.approve))
		v1.POST("/ads/:id/reject", f.endpoint(EndpointReject, f.decide(moderation.StatusRejected, moderation.ActionRejected)))
		v1.POST("/ads/:id/request-changes", f.endpoint(EndpointRequestChanges, f.decide(moderation.StatusDraft, moderation.ActionRequestChanges)))

		v1.GET("/stats/summary", f.endpoint(EndpointSummary, f.summary))
		v1.GET("/stats/chart/activity", f.endpoint(EndpointActivity, f.activity))
		v1.GET("/stats/chart/decisions", f.endpoint(EndpointDecisions, f.decisions))
		v1.GET("/stats/chart/categories", f.endpoint(EndpointCategories, f.categories))
	}
	f.router = r
	return f
}

// Handler returns the HTTP handler, suitable for httptest.NewServer
func (f *FakeAPI) Handler() http.Handler {
	return f.router
}

// FailOn makes an endpoint answer with the given status and body
func (f *FakeAPI) FailOn(endpoint string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[endpoint] = Failure{Status: status, Body: body}
}

// Delay holds responses of an endpoint until d elapses or the client goes away
func (f *FakeAPI) Delay(endpoint string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays[endpoint] = d
}

// Reset clears injected failures and delays
func (f *FakeAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = make(map[string]Failure)
	f.delays = make(map[string]time.Duration)
}

// SetStats replaces the fixture stats of a period
func (f *FakeAPI) SetStats(period stats.Period, ps PeriodStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[period] = ps
}

// Hits reports how many requests an endpoint received
func (f *FakeAPI) Hits(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[endpoint]
}

// LastRequestID is the X-Request-ID of the latest request to an endpoint
func (f *FakeAPI) LastRequestID(endpoint string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqIDs[endpoint]
}

// Ad returns a copy of a stored ad
func (f *FakeAPI) Ad(id core.ListingID) (moderation.Advertisement, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ad, ok := f.ads[id]
	if !ok {
		return moderation.Advertisement{}, false
	}
	return *ad, true
}

func (f *FakeAPI) endpoint(name string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.mu.Lock()
		f.hits[name]++
		f.reqIDs[name] = c.GetHeader("X-Request-ID")
		failure, failing := f.failures[name]
		delay := f.delays[name]
		f.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-c.Request.Context().Done():
				return
			}
		}
		if failing {
			c.Data(failure.Status, "application/json; charset=utf-8", []byte(failure.Body))
			return
		}
		h(c)
	}
}

func (f *FakeAPI) listAds(c *gin.Context) {
	values := c.Request.URL.Query()
	query, err := moderation.ParseListingQuery(values)
	if err == nil {
		query = query.Normalize()
		err = query.Validate()
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f.mu.Lock()
	matched := make([]moderation.Listing, 0, len(f.ads))
	for _, ad := range f.ads {
		if matches(ad, query) {
			matched = append(matched, listingOf(ad))
		}
	}
	f.mu.Unlock()

	sortListings(matched, query.SortBy, query.SortOrder)

	total := len(matched)
	start := (query.Page - 1) * query.Limit
	if start > total {
		start = total
	}
	end := start + query.Limit
	if end > total {
		end = total
	}

	totalPages := (total + query.Limit - 1) / query.Limit
	c.JSON(http.StatusOK, gin.H{
		"ads": matched[start:end],
		"pagination": gin.H{
			"currentPage":  query.Page,
			"totalPages":   totalPages,
			"totalItems":   total,
			"itemsPerPage": query.Limit,
		},
	})
}

func matches(ad *moderation.Advertisement, q moderation.ListingQuery) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(ad.Title), strings.ToLower(q.Search)) {
		return false
	}
	if q.CategoryID > 0 && ad.CategoryID != q.CategoryID {
		return false
	}
	if len(q.Statuses) > 0 {
		found := false
		for _, s := range q.Statuses {
			if s == ad.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.MinPrice > 0 && ad.Price < q.MinPrice {
		return false
	}
	if q.MaxPrice > 0 && ad.Price > q.MaxPrice {
		return false
	}
	return true
}

func listingOf(ad *moderation.Advertisement) moderation.Listing {
	return moderation.Listing{
		ID:         ad.ID,
		Title:      ad.Title,
		Price:      ad.Price,
		Category:   ad.Category,
		CategoryID: ad.CategoryID,
		CreatedAt:  ad.CreatedAt,
		Status:     ad.Status,
		Priority:   ad.Priority,
		Images:     ad.Images,
	}
}

func sortListings(ads []moderation.Listing, by, order string) {
	less := func(i, j int) bool {
		switch by {
		case moderation.SortPrice:
			if ads[i].Price != ads[j].Price {
				return ads[i].Price < ads[j].Price
			}
		case moderation.SortPriority:
			if ads[i].Priority != ads[j].Priority {
				// urgent sorts above normal in ascending order
				return ads[i].Priority == moderation.PriorityUrgent
			}
		default:
			if ads[i].CreatedAt != ads[j].CreatedAt {
				return ads[i].CreatedAt < ads[j].CreatedAt
			}
		}
		return ads[i].ID < ads[j].ID
	}
	if order == "desc" {
		sort.SliceStable(ads, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(ads, less)
}

func (f *FakeAPI) lookup(c *gin.Context) (*moderation.Advertisement, bool) {
	id, err := core.ParseListingID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор"})
		return nil, false
	}
	ad, ok := f.ads[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ad not found"})
		return nil, false
	}
	return ad, true
}

func (f *FakeAPI) getAd(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ad, ok := f.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ad)
}

func (f *FakeAPI) approve(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ad, ok := f.lookup(c)
	if !ok {
		return
	}
	f.record(ad, moderation.StatusApproved, moderation.ActionApproved, nil, "")
	c.JSON(http.StatusOK, gin.H{"message": "Объявление одобрено", "ad": ad})
}

func (f *FakeAPI) decide(status moderation.Status, action moderation.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body moderation.Decision
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Reason) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Необходимо указать причину"})
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		ad, ok := f.lookup(c)
		if !ok {
			return
		}
		reason := body.Reason
		f.record(ad, status, action, &reason, body.Comment)
		c.JSON(http.StatusOK, gin.H{"message": "Решение сохранено", "ad": ad})
	}
}

// record must be called with f.mu held
func (f *FakeAPI) record(ad *moderation.Advertisement, status moderation.Status, action moderation.Action, reason *string, comment string) {
	stamp := f.now().UTC().Format(time.RFC3339)
	ad.Status = status
	ad.UpdatedAt = stamp
	ad.ModerationHistory = append(ad.ModerationHistory, moderation.HistoryEntry{
		ID:            f.nextHist,
		ModeratorID:   1,
		ModeratorName: "Модератор",
		Action:        action,
		Reason:        reason,
		Comment:       comment,
		Timestamp:     stamp,
	})
	f.nextHist++
}

func (f *FakeAPI) periodStats(c *gin.Context) (PeriodStats, bool) {
	period, err := stats.ParsePeriod(c.Query("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return PeriodStats{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats[period], true
}

func (f *FakeAPI) summary(c *gin.Context) {
	if ps, ok := f.periodStats(c); ok {
		c.JSON(http.StatusOK, ps.Summary)
	}
}

func (f *FakeAPI) activity(c *gin.Context) {
	if ps, ok := f.periodStats(c); ok {
		points := ps.Activity
		if points == nil {
			points = []stats.ActivityPoint{}
		}
		c.JSON(http.StatusOK, points)
	}
}

func (f *FakeAPI) decisions(c *gin.Context) {
	if ps, ok := f.periodStats(c); ok {
		c.JSON(http.StatusOK, ps.Decisions)
	}
}

func (f *FakeAPI) categories(c *gin.Context) {
	ps, ok := f.periodStats(c)
	if !ok {
		return
	}
	body, err := categoriesObject(ps.Categories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// categoriesObject writes entries as a JSON object keeping their order
func categoriesObject(entries stats.CategoryEntries) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Category)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
