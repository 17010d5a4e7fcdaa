package testkit

import (
	"fmt"
	"time"

	"modboard/domain/core"
	"modboard/domain/moderation"
	"modboard/domain/stats"
)

// PeriodStats is everything the four stats endpoints return for one period
type PeriodStats struct {
	Summary    stats.Summary
	Activity   []stats.ActivityPoint
	Decisions  stats.Decisions
	Categories stats.CategoryEntries
}

var fixtureTitles = []string{
	"Двухкомнатная квартира у метро",
	"Toyota Camry 2018",
	"Требуется курьер",
	"Ремонт стиральных машин",
	"Котята британской породы",
	"Электрогитара Fender",
	"Детская коляска 3 в 1",
	"Ноутбук Lenovo ThinkPad",
}

var fixtureSellers = []moderation.Seller{
	{ID: 1, Name: "Анна Смирнова", Rating: "4.8", TotalAds: 12},
	{ID: 2, Name: "Иван Петров", Rating: "4.1", TotalAds: 1},
	{ID: 3, Name: "ООО Ромашка", Rating: "3.9", TotalAds: 134},
}

// FixtureAds builds count deterministic advertisements created before anchor
func FixtureAds(count int, anchor time.Time) []moderation.Advertisement {
	categories := moderation.Categories()
	statuses := moderation.Statuses()

	ads := make([]moderation.Advertisement, 0, count)
	for i := 0; i < count; i++ {
		id := core.ListingID(i + 1)
		category := categories[i%len(categories)]
		created := anchor.Add(-time.Duration(i*7) * time.Hour)
		seller := fixtureSellers[i%len(fixtureSellers)]
		seller.RegisteredAt = anchor.AddDate(-(i % 4), -(i % 5), 0).Format(time.RFC3339)

		priority := moderation.PriorityNormal
		if i%5 == 0 {
			priority = moderation.PriorityUrgent
		}

		ads = append(ads, moderation.Advertisement{
			ID:          id,
			Title:       fmt.Sprintf("%s #%d", fixtureTitles[i%len(fixtureTitles)], id),
			Description: "Состояние отличное, торг уместен.",
			Price:       float64(1500 + (i*7919)%150000),
			Category:    category.Name,
			CategoryID:  category.ID,
			Status:      statuses[i%len(statuses)],
			Priority:    priority,
			CreatedAt:   created.Format(time.RFC3339),
			UpdatedAt:   created.Format(time.RFC3339),
			Images: []string{
				fmt.Sprintf("https://placehold.co/600x400?text=ad-%d-1", id),
				fmt.Sprintf("https://placehold.co/600x400?text=ad-%d-2", id),
			},
			Seller: seller,
			Characteristics: map[string]string{
				"Состояние": "Б/у",
				"Гарантия":  "Нет",
			},
			ModerationHistory: []moderation.HistoryEntry{},
		})
	}
	return ads
}

// FixtureStats returns stats for every period ending at anchor. The week
// period totals 100 reviews: 70 approved, 20 rejected, 10 sent back, with a
// five minute average.
func FixtureStats(anchor time.Time) map[stats.Period]PeriodStats {
	day := func(offset int) string {
		return anchor.AddDate(0, 0, -offset).Format("2006-01-02")
	}

	weekApproved := []int{10, 8, 12, 9, 11, 10, 10}
	weekRejected := []int{3, 2, 4, 3, 2, 3, 3}
	weekChanges := []int{1, 2, 1, 2, 1, 2, 1}
	week := make([]stats.ActivityPoint, 0, 7)
	for i := range weekApproved {
		week = append(week, stats.ActivityPoint{
			Date:           day(6 - i),
			Approved:       weekApproved[i],
			Rejected:       weekRejected[i],
			RequestChanges: weekChanges[i],
		})
	}

	month := make([]stats.ActivityPoint, 0, 30)
	var monthDecisions stats.Decisions
	for i := 0; i < 30; i++ {
		p := stats.ActivityPoint{
			Date:           day(29 - i),
			Approved:       8 + i%5,
			Rejected:       2 + i%3,
			RequestChanges: i % 2,
		}
		monthDecisions.Approved += p.Approved
		monthDecisions.Rejected += p.Rejected
		monthDecisions.RequestChanges += p.RequestChanges
		month = append(month, p)
	}
	monthTotal := monthDecisions.Sum()

	return map[stats.Period]PeriodStats{
		stats.PeriodToday: {
			Summary: stats.Summary{
				TotalReviewed:            12,
				ApprovedPercentage:       stats.Percent(8, 12),
				RejectedPercentage:       stats.Percent(3, 12),
				RequestChangesPercentage: stats.Percent(1, 12),
				AverageReviewTime:        240,
			},
			Activity:  []stats.ActivityPoint{{Date: day(0), Approved: 8, Rejected: 3, RequestChanges: 1}},
			Decisions: stats.Decisions{Approved: 8, Rejected: 3, RequestChanges: 1},
			Categories: stats.CategoryEntries{
				{Category: "Электроника", Count: 5},
				{Category: "Транспорт", Count: 4},
				{Category: "Услуги", Count: 3},
			},
		},
		stats.PeriodWeek: {
			Summary: stats.Summary{
				TotalReviewed:            100,
				ApprovedPercentage:       70,
				RejectedPercentage:       20,
				RequestChangesPercentage: 10,
				AverageReviewTime:        300,
			},
			Activity:  week,
			Decisions: stats.Decisions{Approved: 70, Rejected: 20, RequestChanges: 10},
			Categories: stats.CategoryEntries{
				{Category: "Электроника", Count: 30},
				{Category: "Недвижимость", Count: 20},
				{Category: "Транспорт", Count: 20},
				{Category: "Личные вещи", Count: 15},
				{Category: "Хобби", Count: 10},
				{Category: "Детское", Count: 5},
			},
		},
		stats.PeriodMonth: {
			Summary: stats.Summary{
				TotalReviewed:            monthTotal,
				ApprovedPercentage:       stats.Percent(monthDecisions.Approved, monthTotal),
				RejectedPercentage:       stats.Percent(monthDecisions.Rejected, monthTotal),
				RequestChangesPercentage: stats.Percent(monthDecisions.RequestChanges, monthTotal),
				AverageReviewTime:        7500,
			},
			Activity:  month,
			Decisions: monthDecisions,
			Categories: stats.CategoryEntries{
				{Category: "Электроника", Count: 90},
				{Category: "Недвижимость", Count: 70},
				{Category: "Транспорт", Count: 55},
				{Category: "Работа", Count: 40},
				{Category: "Услуги", Count: 31},
				{Category: "Животные", Count: 25},
				{Category: "Детское", Count: 20},
				{Category: "Хобби", Count: 12},
				{Category: "Бытовая техника", Count: 9},
				{Category: "Одежда и обувь", Count: 6},
				{Category: "Спорт и отдых", Count: 3},
			},
		},
	}
}
