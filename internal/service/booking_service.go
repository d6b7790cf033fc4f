package service

import (
	"context"
	"sort"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingService owns booking validation, the approval state machine, the
// time-relative query views and the per-item last/next projection.
type BookingService struct {
	repo   domain.Repository
	bus    domain.EventPublisher
	clock  func() time.Time
	logger *zerolog.Logger
}

func NewBookingService(repo domain.Repository, bus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:   repo,
		bus:    bus,
		clock:  time.Now,
		logger: logger,
	}
}

// Create validates and persists a new WAITING booking. Preconditions are
// checked in a fixed order so each failure is distinct: item exists, booker
// exists, item is listed available, booker is not the owner, the window is
// sane. Overlapping bookings on the same item are deliberately allowed.
func (s *BookingService) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.repo.GetUserByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, database.ErrItemUnavailable
	}
	if booker.ID == item.OwnerID {
		return nil, database.ErrSelfBooking
	}
	// The HTTP boundary validates dates too; re-asserted here because the
	// engine must not trust callers.
	if !start.Before(end) || start.Before(s.clock()) {
		return nil, database.ErrInvalidTimeRange
	}

	booking := &models.Booking{
		ItemID:   item.ID,
		BookerID: booker.ID,
		Start:    start,
		End:      end,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(events.EventBookingCreated, booking)
	return booking, nil
}

// SetApproval transitions a WAITING booking to APPROVED or REJECTED. Only the
// owner of the booked item may decide, and only once: the storage layer
// performs the transition as a compare-and-set on the WAITING status, so a
// racing second decision fails with ErrStatusAlreadySet.
func (s *BookingService) SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, database.ErrAccessDenied
	}
	if booking.Status != models.StatusWaiting {
		return nil, database.ErrStatusAlreadySet
	}

	next := models.StatusApproved
	eventType := events.EventBookingApproved
	if !approved {
		next = models.StatusRejected
		eventType = events.EventBookingRejected
	}

	if err := s.repo.UpdateBookingStatusFromWaiting(ctx, bookingID, next); err != nil {
		return nil, err
	}
	booking.Status = next

	s.publish(eventType, booking)
	return booking, nil
}

// GetByID returns a booking to its booker or to the owner of the booked item;
// any other requester is denied.
func (s *BookingService) GetByID(ctx context.Context, requesterID, bookingID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID == requesterID {
		return booking, nil
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != requesterID {
		return nil, database.ErrAccessDenied
	}
	return booking, nil
}

func (s *BookingService) ListForBooker(ctx context.Context, bookerID int64, state models.State, page models.Page) ([]*models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, bookerID); err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListBookingsByBooker(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	return filterBookings(bookings, state, s.clock(), page)
}

func (s *BookingService) ListForOwner(ctx context.Context, ownerID int64, state models.State, page models.Page) ([]*models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListBookingsByOwnerItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return filterBookings(bookings, state, s.clock(), page)
}

// filterBookings applies the state view against now, orders descending by
// start (ties ascending by id) and pages the result.
func filterBookings(bookings []*models.Booking, state models.State, now time.Time, page models.Page) ([]*models.Booking, error) {
	var keep func(*models.Booking) bool
	switch state {
	case models.StateAll:
		keep = func(*models.Booking) bool { return true }
	case models.StateCurrent:
		keep = func(b *models.Booking) bool { return !b.Start.After(now) && !b.End.Before(now) }
	case models.StatePast:
		keep = func(b *models.Booking) bool { return b.End.Before(now) }
	case models.StateFuture:
		keep = func(b *models.Booking) bool { return b.Start.After(now) }
	case models.StateWaiting:
		keep = func(b *models.Booking) bool { return b.Status == models.StatusWaiting }
	case models.StateRejected:
		keep = func(b *models.Booking) bool { return b.Status == models.StatusRejected }
	default:
		return nil, database.ErrUnsupportedState
	}

	filtered := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if keep(b) {
			filtered = append(filtered, b)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Start.Equal(filtered[j].Start) {
			return filtered[i].ID < filtered[j].ID
		}
		return filtered[i].Start.After(filtered[j].Start)
	})

	lo, hi := page.Bounds(len(filtered))
	return filtered[lo:hi], nil
}

// ProjectBookingsForItem computes the owner-facing last/next view: among
// APPROVED bookings, last is the latest start at or before now, next is the
// earliest start after now. Either may be nil.
func (s *BookingService) ProjectBookingsForItem(ctx context.Context, itemID int64, now time.Time) (*models.BookingSummary, *models.BookingSummary, error) {
	bookings, err := s.repo.ListBookingsForItem(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}

	var lastBooking, nextBooking *models.Booking
	for _, b := range bookings {
		if b.Status != models.StatusApproved {
			continue
		}
		if b.Start.After(now) {
			if nextBooking == nil || b.Start.Before(nextBooking.Start) {
				nextBooking = b
			}
		} else {
			if lastBooking == nil || b.Start.After(lastBooking.Start) {
				lastBooking = b
			}
		}
	}

	var last, next *models.BookingSummary
	if lastBooking != nil {
		last = lastBooking.Summary()
	}
	if nextBooking != nil {
		next = nextBooking.Summary()
	}
	return last, next, nil
}

// CanComment reports whether the author has completed a rental of the item:
// an APPROVED booking whose end has passed. WAITING or REJECTED bookings
// never qualify, no matter how old.
func (s *BookingService) CanComment(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error) {
	bookings, err := s.repo.ListBookingsByBooker(ctx, authorID)
	if err != nil {
		return false, err
	}
	for _, b := range bookings {
		if b.ItemID == itemID && b.Status == models.StatusApproved && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func (s *BookingService) publish(eventType string, booking *models.Booking) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishJSON(eventType, events.NewBookingPayload(booking)); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
