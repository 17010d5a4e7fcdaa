package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Summary is the headline block returned by /stats/summary
type Summary struct {
	TotalReviewed            int     `json:"totalReviewed"`
	ApprovedPercentage       float64 `json:"approvedPercentage"`
	RejectedPercentage       float64 `json:"rejectedPercentage"`
	RequestChangesPercentage float64 `json:"requestChangesPercentage"`
	AverageReviewTime        float64 `json:"averageReviewTime"` // seconds
}

// ActivityPoint is one day of /stats/chart/activity
type ActivityPoint struct {
	Date           string `json:"date"`
	Approved       int    `json:"approved"`
	Rejected       int    `json:"rejected"`
	RequestChanges int    `json:"requestChanges"`
}

// FormattedActivityPoint is an ActivityPoint ready for the bar chart
type FormattedActivityPoint struct {
	Date           string `json:"date"`
	Day            string `json:"day"`
	Approved       int    `json:"approved"`
	Rejected       int    `json:"rejected"`
	RequestChanges int    `json:"requestChanges"`
	Total          int    `json:"total"`
}

// Decisions is the /stats/chart/decisions breakdown
type Decisions struct {
	Approved       int `json:"approved"`
	Rejected       int `json:"rejected"`
	RequestChanges int `json:"requestChanges"`
}

// Sum of all three decision counts
func (d Decisions) Sum() int {
	return d.Approved + d.Rejected + d.RequestChanges
}

// DecisionSlice is one pie chart sector. Value is the rounded percent used
// for sizing, Percent keeps full precision for labels.
type DecisionSlice struct {
	Name    string  `json:"name"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
}

// CategoryCount pairs a category label with its number of reviewed ads
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryEntries is the /stats/chart/categories object decoded in the
// order the API wrote its keys.
type CategoryEntries []CategoryCount

// UnmarshalJSON reads a {"label": count, ...} object without losing key order.
func (c *CategoryEntries) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}

	entries := CategoryEntries{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("categories: expected string key, got %v", keyTok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("categories: count for %q: %w", key, err)
		}
		entries = append(entries, CategoryCount{Category: key, Count: count})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = entries
	return nil
}

// ExportData is the snapshot a report is rendered from. It is built once per
// successful stats load and never mutated afterwards.
type ExportData struct {
	Period         string                   `json:"period"`
	TotalReviewed  int                      `json:"totalReviewed"`
	Approved       int                      `json:"approved"`
	Rejected       int                      `json:"rejected"`
	RequestChanges int                      `json:"requestChanges"`
	AverageTime    float64                  `json:"averageTime"`
	Activity       []FormattedActivityPoint `json:"activityData"`
	Categories     []CategoryCount          `json:"categoryData"`
}

// Dashboard is everything the statistics view renders for one period
type Dashboard struct {
	Period         Period                   `json:"period"`
	Summary        Summary                  `json:"summary"`
	Activity       []FormattedActivityPoint `json:"activity"`
	Decisions      []DecisionSlice          `json:"decisions"`
	Categories     []CategoryCount          `json:"categories"`
	Digest         ActivityDigest           `json:"digest"`
	Export         ExportData               `json:"export"`
	HasData        bool                     `json:"hasData"`
	FallbackPeriod Period                   `json:"fallbackPeriod,omitempty"`
}
