package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"owner_id"`
	RequestID   *int64    `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch carries a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemDetail is the item view returned to a requester. LastBooking and
// NextBooking are populated only when the requester owns the item.
type ItemDetail struct {
	Item
	LastBooking *BookingSummary `json:"last_booking,omitempty"`
	NextBooking *BookingSummary `json:"next_booking,omitempty"`
	Comments    []*Comment      `json:"comments"`
}
