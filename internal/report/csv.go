package report

import (
	"modboard/domain/stats"
	"modboard/internal/format"
)

// CSV renders the compact report
func (e *Exporter) CSV(data stats.ExportData, base string) (*Report, error) {
	now := e.Time()

	var l lines
	l.b.WriteString(bom)

	l.row("ОСНОВНЫЕ МЕТРИКИ")
	l.row("Период", "Всего проверено", "Одобрено", "Отклонено", "На доработку", "Среднее время проверки")
	l.row(
		data.Period,
		itoa(data.TotalReviewed),
		itoa(data.Approved),
		itoa(data.Rejected),
		itoa(data.RequestChanges),
		format.AverageTime(data.AverageTime),
	)
	l.blank()

	if len(data.Activity) > 0 {
		l.row("АКТИВНОСТЬ ПО ДНЯМ")
		l.row("Дата", "Одобрено", "Отклонено", "На доработку", "Всего")
		for _, p := range data.Activity {
			l.row(activityDate(p.Date), itoa(p.Approved), itoa(p.Rejected), itoa(p.RequestChanges), itoa(p.Total))
		}
		l.blank()
	}

	if len(data.Categories) > 0 {
		l.row("ТОП КАТЕГОРИЙ")
		l.row("Категория", "Количество")
		for _, c := range data.Categories {
			l.row(quote(c.Category), itoa(c.Count))
		}
		l.blank()
	}

	l.row("СВОДКА")
	l.row("Процент одобренных", percentOf(data.Approved, data.TotalReviewed))
	l.row("Процент отклоненных", percentOf(data.Rejected, data.TotalReviewed))
	l.row("Процент на доработку", percentOf(data.RequestChanges, data.TotalReviewed))
	l.row("Дата формирования", format.Timestamp(now))

	return &Report{
		Format:      FormatCSV,
		Filename:    Filename(FormatCSV, base, now),
		ContentType: ContentTypeCSV,
		Body:        l.bytes(),
	}, nil
}
