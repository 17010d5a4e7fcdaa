// Package moderation holds the listing and moderation-decision model the
// dashboard exchanges with the moderation API.
package moderation

import (
	"modboard/domain/core"
)

// Status of a listing in the moderation workflow
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusDraft    Status = "draft"
)

// Statuses lists every known listing status
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusDraft}
}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDraft:
		return true
	}
	return false
}

// Priority of a listing in the review queue
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityUrgent Priority = "urgent"
)

// Action recorded in a listing's moderation history
type Action string

const (
	ActionApproved       Action = "approved"
	ActionRejected       Action = "rejected"
	ActionRequestChanges Action = "requestChanges"
)

// Listing is a row of the listings table
type Listing struct {
	ID         core.ListingID `json:"id"`
	Title      string         `json:"title"`
	Price      float64        `json:"price"`
	Category   string         `json:"category"`
	CategoryID int            `json:"categoryId"`
	CreatedAt  string         `json:"createdAt"`
	Status     Status         `json:"status"`
	Priority   Priority       `json:"priority"`
	Images     []string       `json:"images,omitempty"`
}

// Seller is the author of an advertisement
type Seller struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rating       string `json:"rating"`
	TotalAds     int    `json:"totalAds"`
	RegisteredAt string `json:"registeredAt"`
}

// HistoryEntry is one past moderation decision
type HistoryEntry struct {
	ID            int64   `json:"id"`
	ModeratorID   int64   `json:"moderatorId"`
	ModeratorName string  `json:"moderatorName"`
	Action        Action  `json:"action"`
	Reason        *string `json:"reason"`
	Comment       string  `json:"comment"`
	Timestamp     string  `json:"timestamp"`
}

// Advertisement is the full single-item payload with seller and history
type Advertisement struct {
	ID                core.ListingID    `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Price             float64           `json:"price"`
	Category          string            `json:"category"`
	CategoryID        int               `json:"categoryId"`
	Status            Status            `json:"status"`
	Priority          Priority          `json:"priority"`
	CreatedAt         string            `json:"createdAt"`
	UpdatedAt         string            `json:"updatedAt"`
	Images            []string          `json:"images"`
	Seller            Seller            `json:"seller"`
	Characteristics   map[string]string `json:"characteristics"`
	ModerationHistory []HistoryEntry    `json:"moderationHistory"`
}

// ListingPage is one page of search results
type ListingPage struct {
	Ads        []Listing `json:"ads"`
	TotalItems int       `json:"totalItems"`
}

// Category is an entry of the fixed category taxonomy
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Categories is the category filter taxonomy
func Categories() []Category {
	return []Category{
		{ID: 1, Name: "Недвижимость"},
		{ID: 2, Name: "Транспорт"},
		{ID: 3, Name: "Работа"},
		{ID: 4, Name: "Услуги"},
		{ID: 5, Name: "Животные"},
		{ID: 6, Name: "Мода"},
		{ID: 7, Name: "Детское"},
	}
}
