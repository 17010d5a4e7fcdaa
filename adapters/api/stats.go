package api

import (
	"context"
	"net/http"
	"net/url"

	"modboard/domain/stats"
)

func periodQuery(p stats.Period) url.Values {
	return url.Values{"period": []string{p.String()}}
}

// Summary fetches /stats/summary
func (c *Client) Summary(ctx context.Context, period stats.Period) (stats.Summary, error) {
	var s stats.Summary
	err := c.do(ctx, "stats.summary", http.MethodGet, "/stats/summary", periodQuery(period), nil, &s)
	return s, err
}

// Activity fetches /stats/chart/activity
func (c *Client) Activity(ctx context.Context, period stats.Period) ([]stats.ActivityPoint, error) {
	var points []stats.ActivityPoint
	if err := c.do(ctx, "stats.activity", http.MethodGet, "/stats/chart/activity", periodQuery(period), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Decisions fetches /stats/chart/decisions
func (c *Client) Decisions(ctx context.Context, period stats.Period) (stats.Decisions, error) {
	var d stats.Decisions
	err := c.do(ctx, "stats.decisions", http.MethodGet, "/stats/chart/decisions", periodQuery(period), nil, &d)
	return d, err
}

// Categories fetches /stats/chart/categories, keeping the API's key order
func (c *Client) Categories(ctx context.Context, period stats.Period) (stats.CategoryEntries, error) {
	var entries stats.CategoryEntries
	if err := c.do(ctx, "stats.categories", http.MethodGet, "/stats/chart/categories", periodQuery(period), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
