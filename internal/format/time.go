package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	monthsGenitive = [...]string{
		"января", "февраля", "марта", "апреля", "мая", "июня",
		"июля", "августа", "сентября", "октября", "ноября", "декабря",
	}
	monthsShort = [...]string{
		"янв", "фев", "мар", "апр", "мая", "июн",
		"июл", "авг", "сен", "окт", "ноя", "дек",
	}
)

// dateLayouts are the shapes the moderation API uses for dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseDate accepts a calendar date or an RFC3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ShortDay renders a chart axis label such as "1 янв".
func ShortDay(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), monthsShort[t.Month()-1])
}

// LongDate renders "1 января 2024 г.".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d г.", t.Day(), monthsGenitive[t.Month()-1], t.Year())
}

// LongDateTime renders "1 января 2024 г. в 09:05".
func LongDateTime(t time.Time) string {
	return fmt.Sprintf("%s в %02d:%02d", LongDate(t), t.Hour(), t.Minute())
}

// ISODate is the spreadsheet-friendly date used in exported reports.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Timestamp is the generation stamp printed at the end of reports.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// AverageTime renders an average review duration given in seconds,
// e.g. "5 мин", "1 ч", "2 ч 15 мин". Non-positive input renders "0 мин".
func AverageTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "0 мин"
	}

	hours := int(math.Floor(seconds / 3600))
	minutes := int(math.Floor(math.Mod(seconds, 3600) / 60))

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%d ч %d мин", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d ч", hours)
	default:
		return fmt.Sprintf("%d мин", minutes)
	}
}

// TimeOnSite describes how long a seller has been registered, counting a
// year as 365 days and a month as 30.
func TimeOnSite(registeredAt, now time.Time) string {
	days := int(now.Sub(registeredAt).Hours() / 24)
	if days < 0 {
		days = 0
	}

	years := days / 365
	months := (days % 365) / 30

	var parts []string
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", years, YearsText(years)))
	}
	if months > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", months, MonthsText(months)))
	}
	if len(parts) == 0 {
		return "менее месяца"
	}
	return strings.Join(parts, " ")
}
