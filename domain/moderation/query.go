package moderation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"modboard/domain/core"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	// PriceCeiling is the top of the price slider; a max at or above it
	// means "no upper bound".
	PriceCeiling = 100000
)

// SortBy values accepted by /ads
const (
	SortCreatedAt = "createdAt"
	SortPrice     = "price"
	SortPriority  = "priority"
)

// ListingQuery captures the listings table filters
type ListingQuery struct {
	Page       int
	Limit      int
	Search     string
	CategoryID int
	Statuses   []Status
	MinPrice   float64
	MaxPrice   float64
	SortBy     string
	SortOrder  string
}

// Normalize fills defaults and drops filters that mean "anything".
func (q ListingQuery) Normalize() ListingQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	if q.MinPrice <= 0 {
		q.MinPrice = 0
	}
	if q.MaxPrice >= PriceCeiling {
		q.MaxPrice = 0
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}
	return q
}

// Validate rejects values the API would not understand
func (q ListingQuery) Validate() error {
	if q.Limit > MaxLimit {
		return fmt.Errorf("%w: limit %d exceeds %d", core.ErrInvalidQuery, q.Limit, MaxLimit)
	}
	if q.CategoryID < 0 {
		return fmt.Errorf("%w: negative categoryId", core.ErrInvalidQuery)
	}
	for _, s := range q.Statuses {
		if !s.Valid() {
			return fmt.Errorf("%w: unknown status %q", core.ErrInvalidQuery, s)
		}
	}
	if q.MinPrice < 0 || q.MaxPrice < 0 {
		return fmt.Errorf("%w: negative price bound", core.ErrInvalidQuery)
	}
	if q.MaxPrice > 0 && q.MinPrice > q.MaxPrice {
		return fmt.Errorf("%w: minPrice %v above maxPrice %v", core.ErrInvalidQuery, q.MinPrice, q.MaxPrice)
	}
	switch q.SortBy {
	case "", SortCreatedAt, SortPrice, SortPriority:
	default:
		return fmt.Errorf("%w: unknown sortBy %q", core.ErrInvalidQuery, q.SortBy)
	}
	switch q.SortOrder {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("%w: unknown sortOrder %q", core.ErrInvalidQuery, q.SortOrder)
	}
	return nil
}

// Values encodes the query for GET /ads, omitting unset filters. Statuses
// are sent as repeated status parameters.
func (q ListingQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.CategoryID > 0 {
		v.Set("categoryId", strconv.Itoa(q.CategoryID))
	}
	for _, s := range q.Statuses {
		v.Add("status", string(s))
	}
	if q.MinPrice > 0 {
		v.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		v.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	return v
}

// ParseListingQuery reads the filters from URL parameters, using the same
// names Values writes.
func ParseListingQuery(v url.Values) (ListingQuery, error) {
	var q ListingQuery
	var err error

	if q.Page, err = intParam(v, "page"); err != nil {
		return q, err
	}
	if q.Limit, err = intParam(v, "limit"); err != nil {
		return q, err
	}
	if q.CategoryID, err = intParam(v, "categoryId"); err != nil {
		return q, err
	}
	if q.MinPrice, err = floatParam(v, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = floatParam(v, "maxPrice"); err != nil {
		return q, err
	}

	q.Search = v.Get("search")
	q.SortBy = v.Get("sortBy")
	q.SortOrder = v.Get("sortOrder")
	for _, raw := range v["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				q.Statuses = append(q.Statuses, Status(s))
			}
		}
	}
	return q, nil
}

func intParam(v url.Values, key string) (int, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewValidationError(key, "must be an integer")
	}
	return n, nil
}

func floatParam(v url.Values, key string) (float64, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewValidationError(key, "must be a number")
	}
	return f, nil
}
