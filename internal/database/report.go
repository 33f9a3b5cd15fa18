package database

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/models"
)

// GetBookingReport returns every booking joined with item and user names,
// ordered by start descending, for exports.
func (db *DB) GetBookingReport(ctx context.Context) ([]models.BookingReportRow, error) {
	query := `SELECT b.id, i.name, o.name, u.name, b.start_time, b.end_time, b.status
              FROM bookings b
              JOIN items i ON i.id = b.item_id
              JOIN users o ON o.id = i.owner_id
              JOIN users u ON u.id = b.booker_id
              ORDER BY b.start_time DESC, b.id DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking report: %w", err)
	}
	defer rows.Close()

	var report []models.BookingReportRow
	for rows.Next() {
		var r models.BookingReportRow
		var start, end int64
		var status string
		if err := rows.Scan(&r.BookingID, &r.ItemName, &r.OwnerName, &r.BookerName, &start, &end, &status); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		r.Start = time.Unix(start, 0)
		r.End = time.Unix(end, 0)
		r.Status = models.BookingStatus(status)
		report = append(report, r)
	}
	return report, rows.Err()
}
