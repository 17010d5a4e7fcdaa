// Package report renders stats snapshots into downloadable documents.
//
// The delimited reports use ';' as the field separator and start with a UTF-8
// byte order mark so spreadsheet programs in ru-RU locales open them with the
// right encoding and columns.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"modboard/domain/core"
	"modboard/domain/stats"
	"modboard/internal/format"
)

// Format identifies a report kind
type Format string

const (
	FormatCSV      Format = "csv"
	FormatDetailed Format = "detailed"
	FormatXLSX     Format = "xlsx"
)

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatCSV, FormatDetailed, FormatXLSX}
}

// ParseFormat accepts a format name; "pdf" is kept as an alias of detailed
// for links created by older dashboards.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatDetailed, "pdf":
		return FormatDetailed, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnknownFormat, s)
	}
}

// Content types
const (
	ContentTypeCSV      = "text/csv; charset=utf-8"
	ContentTypeDetailed = "application/vnd.ms-excel; charset=utf-8"
	ContentTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	bom       = "\ufeff"
	separator = ";"
)

// Report is a fully rendered document
type Report struct {
	Format      Format
	Filename    string
	ContentType string
	Body        []byte
}

// ReportName is the filename base for a period token
func ReportName(token string) string {
	return "статистика_модерации_" + token
}

// Exporter renders reports. Now stamps generation times and filenames.
type Exporter struct {
	Now func() time.Time
}

// NewExporter returns an Exporter using the wall clock
func NewExporter() *Exporter {
	return &Exporter{Now: time.Now}
}

// Time is the exporter clock reading
func (e *Exporter) Time() time.Time {
	if e == nil || e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Filename builds the download name for a report generated at t
func Filename(f Format, base string, t time.Time) string {
	date := format.ISODate(t)
	switch f {
	case FormatDetailed:
		return base + "_подробный_отчет_" + date + ".xls"
	case FormatXLSX:
		return base + "_" + date + ".xlsx"
	default:
		return base + "_" + date + ".csv"
	}
}

// percentOf renders part/total as "x.y%", 0.0% when total is zero. Ties
// round away from zero, so 0.25 prints as 0.3.
func percentOf(part, total int) string {
	rounded := math.Round(stats.Percent(part, total)*10) / 10
	return strconv.FormatFloat(rounded, 'f', 1, 64) + "%"
}

// Efficiency is ads reviewed per hour at the average review time, 0 when
// either input is not positive.
func Efficiency(totalReviewed int, averageSeconds float64) int {
	if totalReviewed <= 0 || averageSeconds <= 0 {
		return 0
	}
	return int(math.Round(float64(totalReviewed) / (averageSeconds / 60)))
}

// activityDate renders a point's date as yyyy-MM-dd, keeping the raw value
// when it cannot be parsed.
func activityDate(raw string) string {
	t, err := format.ParseDate(raw)
	if err != nil {
		return raw
	}
	return format.ISODate(t)
}

// quote wraps a field in double quotes, doubling embedded ones
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

type lines struct {
	b strings.Builder
}

func (l *lines) row(fields ...string) {
	l.b.WriteString(strings.Join(fields, separator))
	l.b.WriteByte('\n')
}

func (l *lines) blank() {
	l.b.WriteByte('\n')
}

func (l *lines) bytes() []byte {
	return []byte(l.b.String())
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
