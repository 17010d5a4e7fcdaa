package moderation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemView(t *testing.T) {
	reason := "Неверная категория"
	ad := Advertisement{
		ID:       1,
		Title:    "Велосипед",
		Price:    12000,
		Status:   StatusPending,
		Priority: PriorityUrgent,
		Images:   []string{"a.jpg", "b.jpg"},
		Seller: Seller{
			Name:         "Иван",
			Rating:       "4.8",
			TotalAds:     21,
			RegisteredAt: "2022-01-01T00:00:00Z",
		},
		ModerationHistory: []HistoryEntry{
			{ModeratorName: "Анна", Action: ActionRequestChanges, Reason: &reason, Timestamp: "2024-02-03T10:15:00Z"},
			{ModeratorName: "Олег", Action: ActionApproved, Timestamp: "bad"},
		},
	}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	view := NewItemView(ad, now)
	assert.Equal(t, "На модерации", view.Status)
	assert.Equal(t, "warning", view.StatusColor)
	assert.True(t, view.Urgent)
	assert.Equal(t, 2, view.GalleryCount)
	assert.Equal(t, "21 объявление", view.Seller.AdsText)
	assert.Equal(t, "2 года 2 месяца", view.Seller.YearsOnSite)
	assert.Zero(t, view.PrevID)
	assert.EqualValues(t, 2, view.NextID)

	require.Len(t, view.History, 2)
	assert.Equal(t, "Доработка", view.History[0].Status)
	assert.Equal(t, "3 февраля 2024 г. в 10:15", view.History[0].Date)
	assert.Equal(t, reason, view.History[0].Reason)
	assert.Equal(t, "bad", view.History[1].Date)
}
