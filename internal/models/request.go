package models

import "time"

// ItemRequest records "I need an item like X". Items created later may
// reference the request that prompted them.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	Created     time.Time `json:"created"`
	Items       []*Item   `json:"items,omitempty"`
}
