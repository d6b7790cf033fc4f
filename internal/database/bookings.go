package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingColumns = `id, item_id, booker_id, start_time, end_time, status, created_at, updated_at`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_time, end_time, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		booking.ItemID, booking.BookerID, booking.Start, booking.End, booking.Status, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatusFromWaiting moves a booking out of WAITING as a
// compare-and-set. Two racing approvals see exactly one row update; the loser
// gets ErrStatusAlreadySet.
func (db *DB) UpdateBookingStatusFromWaiting(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now().UTC(), id, models.StatusWaiting)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrStatusAlreadySet
	}
	return nil
}

func (db *DB) ListBookingsByBooker(ctx context.Context, bookerID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE booker_id = ? ORDER BY start_time DESC, id ASC`
	return db.queryBookings(ctx, query, bookerID)
}

// ListBookingsByOwnerItems returns bookings placed on any item the owner
// lists, joined through the catalog.
func (db *DB) ListBookingsByOwnerItems(ctx context.Context, ownerID int64) ([]*models.Booking, error) {
	query := `SELECT b.id, b.item_id, b.booker_id, b.start_time, b.end_time, b.status, b.created_at, b.updated_at
              FROM bookings b
              JOIN items i ON i.id = b.item_id
              WHERE i.owner_id = ?
              ORDER BY b.start_time DESC, b.id ASC`
	return db.queryBookings(ctx, query, ownerID)
}

func (db *DB) ListBookingsForItem(ctx context.Context, itemID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE item_id = ? ORDER BY start_time DESC, id ASC`
	return db.queryBookings(ctx, query, itemID)
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
