package app

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"modboard/domain/core"
	"modboard/domain/moderation"
	"modboard/domain/stats"
)

type MockStatsAPI struct {
	mock.Mock
}

func (m *MockStatsAPI) Summary(ctx context.Context, period stats.Period) (stats.Summary, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(stats.Summary), args.Error(1)
}

func (m *MockStatsAPI) Activity(ctx context.Context, period stats.Period) ([]stats.ActivityPoint, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]stats.ActivityPoint), args.Error(1)
}

func (m *MockStatsAPI) Decisions(ctx context.Context, period stats.Period) (stats.Decisions, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(stats.Decisions), args.Error(1)
}

func (m *MockStatsAPI) Categories(ctx context.Context, period stats.Period) (stats.CategoryEntries, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(stats.CategoryEntries), args.Error(1)
}

type MockModerationAPI struct {
	mock.Mock
}

func (m *MockModerationAPI) ListAds(ctx context.Context, query moderation.ListingQuery) (*moderation.ListingPage, error) {
	args := m.Called(ctx, query)
	page, _ := args.Get(0).(*moderation.ListingPage)
	return page, args.Error(1)
}

func (m *MockModerationAPI) GetAd(ctx context.Context, id core.ListingID) (*moderation.Advertisement, error) {
	args := m.Called(ctx, id)
	ad, _ := args.Get(0).(*moderation.Advertisement)
	return ad, args.Error(1)
}

func (m *MockModerationAPI) Approve(ctx context.Context, id core.ListingID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockModerationAPI) Reject(ctx context.Context, id core.ListingID, decision moderation.Decision) error {
	return m.Called(ctx, id, decision).Error(0)
}

func (m *MockModerationAPI) RequestChanges(ctx context.Context, id core.ListingID, decision moderation.Decision) error {
	return m.Called(ctx, id, decision).Error(0)
}

type MockWorkbook struct {
	mock.Mock
}

func (m *MockWorkbook) Write(data stats.ExportData, digest stats.ActivityDigest, generated time.Time) ([]byte, error) {
	args := m.Called(data, digest, generated)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}
