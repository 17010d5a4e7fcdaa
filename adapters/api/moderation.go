package api

import (
	"context"
	"net/http"

	"modboard/domain/core"
	"modboard/domain/moderation"
)

type listResponse struct {
	Ads        []moderation.Listing `json:"ads"`
	Pagination struct {
		TotalItems int `json:"totalItems"`
	} `json:"pagination"`
}

// ListAds runs a listing search. TotalItems falls back to the page length
// when the API omits pagination.
func (c *Client) ListAds(ctx context.Context, query moderation.ListingQuery) (*moderation.ListingPage, error) {
	var resp listResponse
	if err := c.do(ctx, "ads.list", http.MethodGet, "/ads", query.Values(), nil, &resp); err != nil {
		return nil, err
	}

	page := &moderation.ListingPage{Ads: resp.Ads, TotalItems: resp.Pagination.TotalItems}
	if page.Ads == nil {
		page.Ads = []moderation.Listing{}
	}
	if page.TotalItems == 0 {
		page.TotalItems = len(page.Ads)
	}
	return page, nil
}

// GetAd fetches one advertisement with seller and history
func (c *Client) GetAd(ctx context.Context, id core.ListingID) (*moderation.Advertisement, error) {
	var ad moderation.Advertisement
	if err := c.do(ctx, "ads.get", http.MethodGet, "/ads/"+id.String(), nil, nil, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// Approve marks an ad approved
func (c *Client) Approve(ctx context.Context, id core.ListingID) error {
	return c.do(ctx, "ads.approve", http.MethodPost, "/ads/"+id.String()+"/approve", nil, nil, nil)
}

// Reject rejects an ad with a reason
func (c *Client) Reject(ctx context.Context, id core.ListingID, decision moderation.Decision) error {
	return c.do(ctx, "ads.reject", http.MethodPost, "/ads/"+id.String()+"/reject", nil, decision, nil)
}

// RequestChanges sends an ad back to its author
func (c *Client) RequestChanges(ctx context.Context, id core.ListingID, decision moderation.Decision) error {
	return c.do(ctx, "ads.request-changes", http.MethodPost, "/ads/"+id.String()+"/request-changes", nil, decision, nil)
}
