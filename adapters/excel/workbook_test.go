package excel

import (
	"bytes"
	"testing"
	"time"

	"modboard/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookWriter_Write(t *testing.T) {
	data := stats.ExportData{
		Period:         "7_дней",
		TotalReviewed:  10,
		Approved:       6,
		Rejected:       3,
		RequestChanges: 1,
		AverageTime:    600,
		Activity: []stats.FormattedActivityPoint{
			{Date: "2024-03-01", Day: "1 мар", Approved: 4, Rejected: 1, Total: 5},
			{Date: "2024-03-02", Day: "2 мар", Approved: 2, Rejected: 2, RequestChanges: 1, Total: 5},
		},
		Categories: []stats.CategoryCount{{Category: "Авто", Count: 3}, {Category: "Мебель", Count: 1}},
	}
	digest := stats.SummarizeActivity(data.Activity)

	generated := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	raw, err := NewWorkbookWriter().Write(data, digest, generated)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetActivity, SheetCategories}, f.GetSheetList())

	v, err := f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "10", v)

	v, err = f.GetCellValue(SheetSummary, "B7")
	require.NoError(t, err)
	assert.Equal(t, "10 мин", v)

	rows, err := f.GetRows(SheetActivity)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2 мар", rows[2][1])
	assert.Equal(t, "5", rows[2][5])

	v, err = f.GetCellValue(SheetSummary, "B17")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05 10:00:00", v)

	v, err = f.GetCellValue(SheetCategories, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Мебель", v)
}

func TestWorkbookWriter_EmptyData(t *testing.T) {
	raw, err := NewWorkbookWriter().Write(stats.ExportData{Period: "сегодня"}, stats.ActivityDigest{}, time.Time{})
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetCategories)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
