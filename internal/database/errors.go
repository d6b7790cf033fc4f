package database

import "errors"

// Sentinel errors shared between the storage layer and the services. Callers
// branch on these with errors.Is; messages are never parsed.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("item request not found")

	ErrEmailTaken = errors.New("email already in use")

	ErrAccessDenied     = errors.New("access denied")
	ErrSelfBooking      = errors.New("owner cannot book own item")
	ErrItemUnavailable  = errors.New("item is not available for booking")
	ErrInvalidTimeRange = errors.New("invalid booking time range")
	ErrStatusAlreadySet = errors.New("booking status already decided")
	ErrUnsupportedState = errors.New("unsupported state filter")

	ErrCommentNotAllowed = errors.New("commenting requires a completed booking")
)
