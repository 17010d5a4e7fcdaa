package moderation

import (
	"fmt"
	"time"

	"modboard/domain/core"
	"modboard/internal/format"
)

// SellerView is the seller card of the review screen
type SellerView struct {
	Name        string `json:"name"`
	Rating      string `json:"rating"`
	YearsOnSite string `json:"yearsOnSite"`
	AdsCount    int    `json:"adsCount"`
	AdsText     string `json:"adsText"`
}

// HistoryView is one rendered history row
type HistoryView struct {
	Moderator string `json:"moderator"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

// ItemView is the single-item review screen
type ItemView struct {
	ID              core.ListingID    `json:"id"`
	Title           string            `json:"title"`
	Price           string            `json:"price"`
	Status          string            `json:"status"`
	StatusColor     string            `json:"statusColor"`
	Urgent          bool              `json:"urgent"`
	Description     string            `json:"description"`
	Images          []string          `json:"images"`
	GalleryCount    int               `json:"galleryCount"`
	Characteristics map[string]string `json:"characteristics"`
	Seller          SellerView        `json:"seller"`
	History         []HistoryView     `json:"history"`
	PrevID          core.ListingID    `json:"prevId,omitempty"`
	NextID          core.ListingID    `json:"nextId"`
}

// NewItemView renders an advertisement for review as of now.
func NewItemView(ad Advertisement, now time.Time) ItemView {
	view := ItemView{
		ID:              ad.ID,
		Title:           ad.Title,
		Price:           format.Price(ad.Price),
		Status:          format.StatusText(string(ad.Status)),
		StatusColor:     format.StatusColor(string(ad.Status)),
		Urgent:          ad.Priority == PriorityUrgent,
		Description:     ad.Description,
		Images:          append([]string(nil), ad.Images...),
		GalleryCount:    len(ad.Images),
		Characteristics: ad.Characteristics,
		Seller: SellerView{
			Name:     ad.Seller.Name,
			Rating:   ad.Seller.Rating,
			AdsCount: ad.Seller.TotalAds,
			AdsText:  fmt.Sprintf("%d %s", ad.Seller.TotalAds, format.AdsCountText(ad.Seller.TotalAds)),
		},
		History: make([]HistoryView, 0, len(ad.ModerationHistory)),
		NextID:  ad.ID + 1,
	}
	if ad.ID > 1 {
		view.PrevID = ad.ID - 1
	}

	if registered, err := format.ParseDate(ad.Seller.RegisteredAt); err == nil {
		view.Seller.YearsOnSite = format.TimeOnSite(registered, now)
	}

	for _, h := range ad.ModerationHistory {
		row := HistoryView{
			Moderator: h.ModeratorName,
			Date:      h.Timestamp,
			Status:    format.ActionText(string(h.Action)),
			Comment:   h.Comment,
		}
		if ts, err := format.ParseDate(h.Timestamp); err == nil {
			row.Date = format.LongDateTime(ts)
		}
		if h.Reason != nil {
			row.Reason = *h.Reason
		}
		view.History = append(view.History, row)
	}
	return view
}
