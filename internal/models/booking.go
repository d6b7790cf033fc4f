package models

import "time"

type Booking struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingSummary is the minimal booking slice exposed on an owner's item view.
type BookingSummary struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"booker_id"`
}

func (b *Booking) Summary() *BookingSummary {
	return &BookingSummary{ID: b.ID, BookerID: b.BookerID}
}
