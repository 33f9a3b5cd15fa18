package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Page is a zero-based offset window. Validation (From >= 0, Size > 0)
// belongs to the transport layer.
type Page struct {
	From int
	Size int
}

type Repository interface {
	// Users.
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Items.
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64, page Page) ([]*models.Item, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string, page Page) ([]*models.Item, error)
	DeleteItem(ctx context.Context, id int64) error

	// Bookings. List queries return start-descending pages; now is the
	// single instant used for every temporal comparison of the call.
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error
	ListBookingsByBooker(ctx context.Context, bookerID int64, state StateFilter, now time.Time, page Page) ([]*models.Booking, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64, state StateFilter, now time.Time, page Page) ([]*models.Booking, error)
	GetApprovedBookingsByItem(ctx context.Context, itemID int64) ([]*models.Booking, error)
	CountFinishedBookings(ctx context.Context, bookerID, itemID int64, now time.Time) (int, error)

	// Comments.
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)

	// Item requests.
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error)
	GetRequestsOfOthers(ctx context.Context, requestorID int64, page Page) ([]*models.ItemRequest, error)
}

// RateLimiter answers whether a caller may proceed. Implementations live
// in internal/repository (Redis primary, in-memory fallback).
type RateLimiter interface {
	Allow(ctx context.Context, userID int64) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
