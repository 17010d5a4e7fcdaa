package moderation

import (
	"errors"
	"net/url"
	"testing"

	"modboard/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingQuery_NormalizeDefaults(t *testing.T) {
	q := ListingQuery{MinPrice: -1, MaxPrice: PriceCeiling, Search: "  iphone "}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, "iphone", q.Search)
	assert.Zero(t, q.MinPrice)
	assert.Zero(t, q.MaxPrice)
	assert.Equal(t, "desc", q.SortOrder)
}

func TestListingQuery_Values(t *testing.T) {
	q := ListingQuery{
		Page:       2,
		Limit:      10,
		Search:     "диван",
		CategoryID: 3,
		Statuses:   []Status{StatusPending, StatusRejected},
		MinPrice:   1500,
		SortBy:     SortPrice,
		SortOrder:  "asc",
	}
	v := q.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "10", v.Get("limit"))
	assert.Equal(t, "диван", v.Get("search"))
	assert.Equal(t, "3", v.Get("categoryId"))
	assert.Equal(t, []string{"pending", "rejected"}, v["status"])
	assert.Equal(t, "1500", v.Get("minPrice"))
	assert.False(t, v.Has("maxPrice"))
	assert.Equal(t, "price", v.Get("sortBy"))
	assert.Equal(t, "asc", v.Get("sortOrder"))
}

func TestListingQuery_Validate(t *testing.T) {
	valid := ListingQuery{Page: 1, Limit: 10, SortBy: SortPriority, SortOrder: "desc"}
	require.NoError(t, valid.Validate())

	bad := []ListingQuery{
		{Limit: MaxLimit + 1},
		{SortBy: "title"},
		{SortOrder: "up"},
		{Statuses: []Status{"archived"}},
		{MinPrice: 500, MaxPrice: 100},
		{CategoryID: -1},
	}
	for _, q := range bad {
		assert.True(t, errors.Is(q.Validate(), core.ErrInvalidQuery), "%+v", q)
	}
}

func TestParseListingQuery_RoundTrip(t *testing.T) {
	in := url.Values{}
	in.Set("page", "3")
	in.Set("categoryId", "5")
	in.Add("status", "pending,approved")
	in.Add("status", "draft")
	in.Set("maxPrice", "2500.5")
	in.Set("sortBy", "createdAt")

	q, err := ParseListingQuery(in)
	require.NoError(t, err)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 5, q.CategoryID)
	assert.Equal(t, []Status{StatusPending, StatusApproved, StatusDraft}, q.Statuses)
	assert.Equal(t, 2500.5, q.MaxPrice)

	_, err = ParseListingQuery(url.Values{"page": {"two"}})
	assert.True(t, core.IsValidationError(err))
}
