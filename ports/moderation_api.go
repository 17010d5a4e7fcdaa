package ports

import (
	"context"

	"modboard/domain/core"
	"modboard/domain/moderation"
	"modboard/domain/stats"
)

// ModerationAPI is the listing side of the external moderation service
type ModerationAPI interface {
	ListAds(ctx context.Context, query moderation.ListingQuery) (*moderation.ListingPage, error)
	GetAd(ctx context.Context, id core.ListingID) (*moderation.Advertisement, error)
	Approve(ctx context.Context, id core.ListingID) error
	Reject(ctx context.Context, id core.ListingID, decision moderation.Decision) error
	RequestChanges(ctx context.Context, id core.ListingID, decision moderation.Decision) error
}

// StatsAPI is the statistics side of the external moderation service. Each
// call covers one period.
type StatsAPI interface {
	Summary(ctx context.Context, period stats.Period) (stats.Summary, error)
	Activity(ctx context.Context, period stats.Period) ([]stats.ActivityPoint, error)
	Decisions(ctx context.Context, period stats.Period) (stats.Decisions, error)
	Categories(ctx context.Context, period stats.Period) (stats.CategoryEntries, error)
}
