package report

import (
	"modboard/domain/stats"
	"modboard/internal/format"
)

// Detailed renders the extended report: headline figures with percentages,
// per-day approval share, category shares and an efficiency estimate. It is
// a delimited text document served with a spreadsheet content type.
func (e *Exporter) Detailed(data stats.ExportData, base string) (*Report, error) {
	now := e.Time()

	var l lines
	l.b.WriteString(bom)

	l.row("ОТЧЕТ ПО МОДЕРАЦИИ ОБЪЯВЛЕНИЙ")
	l.blank()

	l.row("ОСНОВНЫЕ ПОКАЗАТЕЛИ")
	l.row("Период", data.Period)
	l.row("Всего проверено", itoa(data.TotalReviewed))
	l.row("Одобрено", itoa(data.Approved))
	l.row("Отклонено", itoa(data.Rejected))
	l.row("На доработку", itoa(data.RequestChanges))
	l.row("Среднее время проверки", format.AverageTime(data.AverageTime))
	l.row("Процент одобренных", percentOf(data.Approved, data.TotalReviewed))
	l.row("Процент отклоненных", percentOf(data.Rejected, data.TotalReviewed))
	l.row("Процент на доработку", percentOf(data.RequestChanges, data.TotalReviewed))
	l.blank()

	if len(data.Activity) > 0 {
		l.row("АКТИВНОСТЬ ПО ДНЯМ")
		l.row("Дата", "Одобрено", "Отклонено", "На доработку", "Всего", "Процент одобренных")
		for _, p := range data.Activity {
			l.row(
				activityDate(p.Date),
				itoa(p.Approved),
				itoa(p.Rejected),
				itoa(p.RequestChanges),
				itoa(p.Total),
				percentOf(p.Approved, p.Total),
			)
		}
		l.blank()
	}

	if len(data.Categories) > 0 {
		total := 0
		for _, c := range data.Categories {
			total += c.Count
		}

		l.row("РАСПРЕДЕЛЕНИЕ ПО КАТЕГОРИЯМ")
		l.row("Категория", "Количество", "Процент")
		for _, c := range data.Categories {
			l.row(quote(c.Category), itoa(c.Count), percentOf(c.Count, total))
		}
		l.blank()
	}

	l.row("СЛУЖЕБНАЯ ИНФОРМАЦИЯ")
	l.row("Дата формирования отчета", format.Timestamp(now))
	l.row("Эффективность (объявлений/час)", itoa(Efficiency(data.TotalReviewed, data.AverageTime)))

	return &Report{
		Format:      FormatDetailed,
		Filename:    Filename(FormatDetailed, base, now),
		ContentType: ContentTypeDetailed,
		Body:        l.bytes(),
	}, nil
}
