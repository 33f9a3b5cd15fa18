package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const bookingColumns = `id, item_id, booker_id, start_time, end_time, status`

// Times are stored as unix seconds so range comparisons stay numeric and
// timezone-independent.

// stateClauses maps every state filter to its extra predicate. The map is
// the single dispatch point: a new StateFilter constant without a clause
// here surfaces immediately in tests.
var stateClauses = map[domain.StateFilter]func(now int64) (string, []any){
	domain.StateAll: func(int64) (string, []any) {
		return "", nil
	},
	domain.StateCurrent: func(now int64) (string, []any) {
		return " AND b.start_time <= ? AND b.end_time > ?", []any{now, now}
	},
	domain.StatePast: func(now int64) (string, []any) {
		return " AND b.end_time < ?", []any{now}
	},
	domain.StateFuture: func(now int64) (string, []any) {
		return " AND b.start_time > ?", []any{now}
	},
	domain.StateWaiting: func(int64) (string, []any) {
		return " AND b.status = ?", []any{string(models.StatusWaiting)}
	},
	domain.StateRejected: func(int64) (string, []any) {
		return " AND b.status = ?", []any{string(models.StatusRejected)}
	},
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_time, end_time, status)
              VALUES (?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		booking.Start.Unix(),
		booking.End.Unix(),
		string(booking.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatus is a compare-and-swap: the row is updated only when
// its status still equals from. Zero affected rows means another writer
// got there first.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error {
	query := `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: booking %d", domain.ErrConcurrentModification, id)
	}
	return nil
}

func (db *DB) ListBookingsByBooker(ctx context.Context, bookerID int64, state domain.StateFilter, now time.Time, page domain.Page) ([]*models.Booking, error) {
	base := `SELECT ` + prefixedBookingColumns + ` FROM bookings b WHERE b.booker_id = ?`
	return db.listBookings(ctx, base, bookerID, state, now, page)
}

func (db *DB) ListBookingsByOwner(ctx context.Context, ownerID int64, state domain.StateFilter, now time.Time, page domain.Page) ([]*models.Booking, error) {
	base := `SELECT ` + prefixedBookingColumns + ` FROM bookings b
             JOIN items i ON i.id = b.item_id WHERE i.owner_id = ?`
	return db.listBookings(ctx, base, ownerID, state, now, page)
}

const prefixedBookingColumns = `b.id, b.item_id, b.booker_id, b.start_time, b.end_time, b.status`

func (db *DB) listBookings(ctx context.Context, base string, scopeID int64, state domain.StateFilter, now time.Time, page domain.Page) ([]*models.Booking, error) {
	clause, ok := stateClauses[state]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownState, state)
	}

	cond, condArgs := clause(now.Unix())
	query := base + cond + ` ORDER BY b.start_time DESC, b.id DESC LIMIT ? OFFSET ?`

	args := append([]any{scopeID}, condArgs...)
	args = append(args, page.Size, page.From)

	return db.queryBookings(ctx, query, args...)
}

func (db *DB) GetApprovedBookingsByItem(ctx context.Context, itemID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE item_id = ? AND status = ? ORDER BY start_time`
	return db.queryBookings(ctx, query, itemID, string(models.StatusApproved))
}

// CountFinishedBookings counts approved bookings of the item by the given
// booker that ended before now. Used to gate comments.
func (db *DB) CountFinishedBookings(ctx context.Context, bookerID, itemID int64, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE booker_id = ? AND item_id = ? AND status = ? AND end_time < ?`
	var count int
	err := db.QueryRowContext(ctx, query, bookerID, itemID, string(models.StatusApproved), now.Unix()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count finished bookings: %w", err)
	}
	return count, nil
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	var start, end int64
	var status string
	if err := row.Scan(&b.ID, &b.ItemID, &b.BookerID, &start, &end, &status); err != nil {
		return nil, err
	}
	b.Start = time.Unix(start, 0)
	b.End = time.Unix(end, 0)
	b.Status = models.BookingStatus(status)
	return &b, nil
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
