package stats

import (
	"math"
	"sort"

	"modboard/internal/format"
)

const (
	// maxCategoryLabel is the rune length after which an axis label is cut
	maxCategoryLabel = 10
	// topCategories bounds the category chart
	topCategories = 10
	ellipsis      = "..."
)

// Decision slice names, in chart order
const (
	SliceApproved       = "Одобрено"
	SliceRejected       = "Отклонено"
	SliceRequestChanges = "На доработку"
)

// Percent returns part/total*100, or 0 when total is not positive.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// ShapeActivity adds the day label and total to every point, keeping order.
func ShapeActivity(raw []ActivityPoint) []FormattedActivityPoint {
	out := make([]FormattedActivityPoint, 0, len(raw))
	for _, p := range raw {
		day := p.Date
		if t, err := format.ParseDate(p.Date); err == nil {
			day = format.ShortDay(t)
		}
		out = append(out, FormattedActivityPoint{
			Date:           p.Date,
			Day:            day,
			Approved:       p.Approved,
			Rejected:       p.Rejected,
			RequestChanges: p.RequestChanges,
			Total:          p.Approved + p.Rejected + p.RequestChanges,
		})
	}
	return out
}

// ShapeDecisions converts counts to pie sectors, dropping empty ones.
func ShapeDecisions(d Decisions) []DecisionSlice {
	sum := d.Sum()
	candidates := []struct {
		name  string
		count int
	}{
		{SliceApproved, d.Approved},
		{SliceRejected, d.Rejected},
		{SliceRequestChanges, d.RequestChanges},
	}

	slices := make([]DecisionSlice, 0, len(candidates))
	for _, c := range candidates {
		pct := Percent(c.count, sum)
		if pct <= 0 {
			continue
		}
		slices = append(slices, DecisionSlice{
			Name:    c.name,
			Value:   int(math.Round(pct)),
			Percent: pct,
		})
	}
	return slices
}

// ShapeCategoryEntries truncates labels, sorts by count descending (ties
// keep input order) and keeps the top ten.
func ShapeCategoryEntries(raw CategoryEntries) []CategoryCount {
	out := make([]CategoryCount, 0, len(raw))
	for _, c := range raw {
		out = append(out, CategoryCount{Category: truncateLabel(c.Category), Count: c.Count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > topCategories {
		out = out[:topCategories]
	}
	return out
}

// ShapeCategories is ShapeCategoryEntries for callers holding a map. Map
// iteration has no order, so ties are ordered by label.
func ShapeCategories(raw map[string]int) []CategoryCount {
	labels := make([]string, 0, len(raw))
	for label := range raw {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	entries := make(CategoryEntries, 0, len(labels))
	for _, label := range labels {
		entries = append(entries, CategoryCount{Category: label, Count: raw[label]})
	}
	return ShapeCategoryEntries(entries)
}

func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= maxCategoryLabel {
		return label
	}
	return string(runes[:maxCategoryLabel]) + ellipsis
}

// BuildExportData assembles the export snapshot. Counts come from the
// decision breakdown, the total and average time from the summary.
func BuildExportData(period Period, summary Summary, decisions Decisions, activity []FormattedActivityPoint, categories []CategoryCount) ExportData {
	return ExportData{
		Period:         period.Token(),
		TotalReviewed:  summary.TotalReviewed,
		Approved:       decisions.Approved,
		Rejected:       decisions.Rejected,
		RequestChanges: decisions.RequestChanges,
		AverageTime:    summary.AverageReviewTime,
		Activity:       append([]FormattedActivityPoint(nil), activity...),
		Categories:     append([]CategoryCount(nil), categories...),
	}
}

// HasData reports whether a period has anything worth charting.
func HasData(summary Summary, activity []FormattedActivityPoint, slices []DecisionSlice, categories []CategoryCount) bool {
	if summary.TotalReviewed > 0 || len(slices) > 0 || len(categories) > 0 {
		return true
	}
	for _, p := range activity {
		if p.Total > 0 {
			return true
		}
	}
	return false
}

// NewDashboard shapes the four raw payloads of one period.
func NewDashboard(period Period, summary Summary, activity []ActivityPoint, decisions Decisions, categories CategoryEntries) *Dashboard {
	shapedActivity := ShapeActivity(activity)
	slices := ShapeDecisions(decisions)
	shapedCategories := ShapeCategoryEntries(categories)

	d := &Dashboard{
		Period:     period,
		Summary:    summary,
		Activity:   shapedActivity,
		Decisions:  slices,
		Categories: shapedCategories,
		Digest:     SummarizeActivity(shapedActivity),
		Export:     BuildExportData(period, summary, decisions, shapedActivity, shapedCategories),
		HasData:    HasData(summary, shapedActivity, slices, shapedCategories),
	}
	if !d.HasData {
		d.FallbackPeriod = DefaultPeriod
	}
	return d
}
