package models

// Booking lifecycle statuses. WAITING is the only creation status, APPROVED
// and REJECTED are terminal. CANCELED is reserved for a future booker-initiated
// cancel flow; no operation currently produces it.
const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELED"
)

const (
	// DefaultPageSize applies when a listing request omits the size parameter.
	DefaultPageSize = 20

	// DefaultItemViewTTL is the cache lifetime of item detail views in seconds.
	DefaultItemViewTTL = 5 * 60

	// RateLimitRequests and RateLimitWindow bound per-user request rates.
	RateLimitRequests = 60
	RateLimitWindow   = 60
)
