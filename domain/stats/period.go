package stats

import (
	"fmt"
	"strings"

	"modboard/domain/core"
)

// Period selects the window every statistics query covers
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// DefaultPeriod is what the dashboard opens with and falls back to when a
// period has no data.
const DefaultPeriod = PeriodWeek

// Periods lists the selectable periods in display order
func Periods() []Period {
	return []Period{PeriodToday, PeriodWeek, PeriodMonth}
}

// ParsePeriod validates a query value; an empty value yields DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPeriod, nil
	case PeriodToday, PeriodWeek, PeriodMonth:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrInvalidPeriod, s)
	}
}

func (p Period) String() string { return string(p) }

// Token is the period fragment embedded in report names
func (p Period) Token() string {
	switch p {
	case PeriodToday:
		return "сегодня"
	case PeriodWeek:
		return "7_дней"
	case PeriodMonth:
		return "30_дней"
	default:
		return string(p)
	}
}

// Label is the human-readable period name
func (p Period) Label() string {
	switch p {
	case PeriodToday:
		return "сегодня"
	case PeriodWeek:
		return "7 дней"
	case PeriodMonth:
		return "30 дней"
	default:
		return string(p)
	}
}
