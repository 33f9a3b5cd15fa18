package models

import "time"

// BookingReportRow is a denormalized booking line for exports.
type BookingReportRow struct {
	BookingID  int64
	ItemName   string
	OwnerName  string
	BookerName string
	Start      time.Time
	End        time.Time
	Status     BookingStatus
}
