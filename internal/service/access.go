package service

import (
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// Booking access policy. Kept in one file so every place where a
// permission failure is masked as not-found is visible at a glance.

// canBookItem rejects owners booking their own items. The violation is
// reported as not-found, never as permission-denied.
func canBookItem(bookerID int64, item *models.Item) error {
	if bookerID == item.OwnerID {
		return fmt.Errorf("%w: user %d cannot book own item %d", domain.ErrNotFound, bookerID, item.ID)
	}
	return nil
}

// canChangeBookingStatus allows only the item owner to approve or reject.
func canChangeBookingStatus(userID int64, item *models.Item) error {
	if userID != item.OwnerID {
		return fmt.Errorf("%w: user %d is not the owner of item %d", domain.ErrPermissionDenied, userID, item.ID)
	}
	return nil
}

// canViewBooking allows the booker and the item owner. Strangers get
// not-found so they cannot confirm the booking exists.
func canViewBooking(booking *models.Booking, item *models.Item, userID int64) error {
	if userID != booking.BookerID && userID != item.OwnerID {
		return fmt.Errorf("%w: user %d is neither booker nor owner of booking %d", domain.ErrNotFound, userID, booking.ID)
	}
	return nil
}

// canEditItem allows only the owner to change an item.
func canEditItem(userID int64, item *models.Item) error {
	if userID != item.OwnerID {
		return fmt.Errorf("%w: user %d is not the owner of item %d", domain.ErrPermissionDenied, userID, item.ID)
	}
	return nil
}
