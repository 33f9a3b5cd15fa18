package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/models"
)

func TestGetBookingReport(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	booker := createTestUser(t, db, "Booker", "booker@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	now := time.Unix(1_700_000_000, 0)
	early := createTestBooking(t, db, item.ID, booker.ID, now, now.Add(time.Hour), models.StatusApproved)
	late := createTestBooking(t, db, item.ID, booker.ID, now.Add(2*time.Hour), now.Add(3*time.Hour), models.StatusWaiting)

	rows, err := db.GetBookingReport(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest start first, names resolved through joins.
	assert.Equal(t, late.ID, rows[0].BookingID)
	assert.Equal(t, early.ID, rows[1].BookingID)
	assert.Equal(t, "Drill", rows[0].ItemName)
	assert.Equal(t, "Owner", rows[0].OwnerName)
	assert.Equal(t, "Booker", rows[0].BookerName)
	assert.Equal(t, models.StatusApproved, rows[1].Status)
}
