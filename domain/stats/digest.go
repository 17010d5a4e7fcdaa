package stats

import (
	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ActivityDigest condenses the daily totals of a period
type ActivityDigest struct {
	Days         int     `json:"days"`
	MeanPerDay   float64 `json:"meanPerDay"`
	MedianPerDay float64 `json:"medianPerDay"`
	PeakDay      string  `json:"peakDay,omitempty"`
	PeakTotal    int     `json:"peakTotal"`
	// TrendPerDay is the least-squares slope of daily totals over the period
	TrendPerDay float64 `json:"trendPerDay"`
}

// SummarizeActivity computes the digest; empty input gives a zero digest.
func SummarizeActivity(points []FormattedActivityPoint) ActivityDigest {
	digest := ActivityDigest{Days: len(points)}
	if len(points) == 0 {
		return digest
	}

	totals := make(mstats.Float64Data, len(points))
	xs := make([]float64, len(points))
	for i, p := range points {
		totals[i] = float64(p.Total)
		xs[i] = float64(i)
		if p.Total > digest.PeakTotal {
			digest.PeakTotal = p.Total
			digest.PeakDay = p.Date
		}
	}

	if mean, err := totals.Mean(); err == nil {
		digest.MeanPerDay = mean
	}
	if median, err := totals.Median(); err == nil {
		digest.MedianPerDay = median
	}

	if len(points) > 1 {
		_, beta := stat.LinearRegression(xs, totals, nil, false)
		digest.TrendPerDay = beta
	}
	return digest
}
