package excel

import (
	"fmt"
	"time"

	"modboard/domain/stats"
	"modboard/internal/format"

	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	SheetSummary    = "Сводка"
	SheetActivity   = "Активность"
	SheetCategories = "Категории"
)

// WorkbookWriter renders a stats snapshot as an XLSX workbook
type WorkbookWriter struct{}

// NewWorkbookWriter creates a writer
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// Write builds the workbook in memory and returns its bytes. A zero
// generated time omits the generation row.
func (w *WorkbookWriter) Write(data stats.ExportData, digest stats.ActivityDigest, generated time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	for _, name := range []string{SheetActivity, SheetCategories} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		return nil, fmt.Errorf("create percent style: %w", err)
	}

	if err := w.writeSummary(f, data, digest, generated, header, percent); err != nil {
		return nil, err
	}
	if err := w.writeActivity(f, data, header); err != nil {
		return nil, err
	}
	if err := w.writeCategories(f, data, header, percent); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *WorkbookWriter) writeSummary(f *excelize.File, data stats.ExportData, digest stats.ActivityDigest, generated time.Time, header, percent int) error {
	rows := [][]interface{}{
		{"Показатель", "Значение"},
		{"Период", data.Period},
		{"Всего проверено", data.TotalReviewed},
		{"Одобрено", data.Approved},
		{"Отклонено", data.Rejected},
		{"На доработку", data.RequestChanges},
		{"Среднее время проверки", format.AverageTime(data.AverageTime)},
		{"Процент одобренных", ratio(data.Approved, data.TotalReviewed)},
		{"Процент отклоненных", ratio(data.Rejected, data.TotalReviewed)},
		{"Процент на доработку", ratio(data.RequestChanges, data.TotalReviewed)},
		{"Дней в периоде", digest.Days},
		{"Среднее за день", digest.MeanPerDay},
		{"Медиана за день", digest.MedianPerDay},
		{"Пиковый день", digest.PeakDay},
		{"Проверено в пиковый день", digest.PeakTotal},
		{"Тренд (объявлений/день)", digest.TrendPerDay},
	}
	if !generated.IsZero() {
		rows = append(rows, []interface{}{"Дата формирования", format.Timestamp(generated)})
	}

	if err := setRows(f, SheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", header); err != nil {
		return fmt.Errorf("style summary header: %w", err)
	}
	// percentage rows 8..10
	if err := f.SetCellStyle(SheetSummary, "B8", "B10", percent); err != nil {
		return fmt.Errorf("style summary percentages: %w", err)
	}
	return f.SetColWidth(SheetSummary, "A", "A", 30)
}

func (w *WorkbookWriter) writeActivity(f *excelize.File, data stats.ExportData, header int) error {
	rows := [][]interface{}{{"Дата", "День", "Одобрено", "Отклонено", "На доработку", "Всего"}}
	for _, p := range data.Activity {
		rows = append(rows, []interface{}{p.Date, p.Day, p.Approved, p.Rejected, p.RequestChanges, p.Total})
	}

	if err := setRows(f, SheetActivity, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetActivity, "A1", "F1", header); err != nil {
		return fmt.Errorf("style activity header: %w", err)
	}
	return f.SetColWidth(SheetActivity, "A", "A", 14)
}

func (w *WorkbookWriter) writeCategories(f *excelize.File, data stats.ExportData, header, percent int) error {
	total := 0
	for _, c := range data.Categories {
		total += c.Count
	}

	rows := [][]interface{}{{"Категория", "Количество", "Доля"}}
	for _, c := range data.Categories {
		rows = append(rows, []interface{}{c.Category, c.Count, ratio(c.Count, total)})
	}

	if err := setRows(f, SheetCategories, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetCategories, "A1", "C1", header); err != nil {
		return fmt.Errorf("style categories header: %w", err)
	}
	if len(data.Categories) > 0 {
		last, err := excelize.CoordinatesToCellName(3, len(rows))
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetCategories, "C2", last, percent); err != nil {
			return fmt.Errorf("style category shares: %w", err)
		}
	}
	return f.SetColWidth(SheetCategories, "A", "A", 24)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// ratio is a spreadsheet fraction, formatted as percent by the cell style
func ratio(part, total int) float64 {
	return stats.Percent(part, total) / 100
}
