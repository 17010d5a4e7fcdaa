package app

import (
	"context"
	"fmt"
	"time"

	"modboard/domain/core"
	"modboard/domain/moderation"
	"modboard/internal"
	"modboard/ports"
)

// ListingService searches the listings table
type ListingService struct {
	api    ports.ModerationAPI
	logger *internal.Logger
}

// NewListingService creates a listing service
func NewListingService(api ports.ModerationAPI, logger *internal.Logger) *ListingService {
	if logger == nil {
		logger = internal.Discard
	}
	return &ListingService{api: api, logger: logger.With("ListingService")}
}

// Search normalizes and validates query before asking the API
func (s *ListingService) Search(ctx context.Context, query moderation.ListingQuery) (*moderation.ListingPage, error) {
	query = query.Normalize()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	page, err := s.api.ListAds(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	if page.TotalItems == 0 {
		page.TotalItems = len(page.Ads)
	}
	s.logger.Debug("page %d: %d of %d listings", query.Page, len(page.Ads), page.TotalItems)
	return page, nil
}

// ModerationService reviews single listings
type ModerationService struct {
	api    ports.ModerationAPI
	logger *internal.Logger
}

// NewModerationService creates a moderation service
func NewModerationService(api ports.ModerationAPI, logger *internal.Logger) *ModerationService {
	if logger == nil {
		logger = internal.Discard
	}
	return &ModerationService{api: api, logger: logger.With("ModerationService")}
}

// Get fetches one advertisement
func (s *ModerationService) Get(ctx context.Context, id core.ListingID) (*moderation.Advertisement, error) {
	ad, err := s.api.GetAd(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", id, err)
	}
	return ad, nil
}

// View fetches one advertisement and renders the review screen as of now
func (s *ModerationService) View(ctx context.Context, id core.ListingID, now time.Time) (*moderation.ItemView, error) {
	ad, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := moderation.NewItemView(*ad, now)
	return &view, nil
}

// Approve approves a listing and returns its refreshed state
func (s *ModerationService) Approve(ctx context.Context, id core.ListingID) (*moderation.Advertisement, error) {
	if err := s.api.Approve(ctx, id); err != nil {
		return nil, fmt.Errorf("approve listing %s: %w", id, err)
	}
	s.logger.Info("listing %s approved", id)
	return s.Get(ctx, id)
}

// Reject rejects a listing with the reasons from a filled-in form
func (s *ModerationService) Reject(ctx context.Context, id core.ListingID, input moderation.FormInput) (*moderation.Advertisement, error) {
	decision, err := moderation.DecisionFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.api.Reject(ctx, id, decision); err != nil {
		return nil, fmt.Errorf("reject listing %s: %w", id, err)
	}
	s.logger.Info("listing %s rejected: %s", id, decision.Reason)
	return s.Get(ctx, id)
}

// RequestChanges sends a listing back to its author with the form's reasons
func (s *ModerationService) RequestChanges(ctx context.Context, id core.ListingID, input moderation.FormInput) (*moderation.Advertisement, error) {
	decision, err := moderation.DecisionFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.api.RequestChanges(ctx, id, decision); err != nil {
		return nil, fmt.Errorf("request changes on listing %s: %w", id, err)
	}
	s.logger.Info("listing %s sent back: %s", id, decision.Reason)
	return s.Get(ctx, id)
}
