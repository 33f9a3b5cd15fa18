package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"
)

// BookingService owns the booking lifecycle: the WAITING -> APPROVED/REJECTED
// state machine, visibility rules and the state-filtered listings.
type BookingService struct {
	repo   domain.Repository
	bus    domain.EventPublisher
	clock  domain.Clock
	logger *zerolog.Logger
}

func NewBookingService(repo domain.Repository, bus domain.EventPublisher, clock domain.Clock, logger *zerolog.Logger) *BookingService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &BookingService{
		repo:   repo,
		bus:    bus,
		clock:  clock,
		logger: logger,
	}
}

// Create registers a WAITING booking of an available item by someone other
// than its owner.
func (s *BookingService) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: booking start %s is not before end %s", domain.ErrValidation, start, end)
	}

	if _, err := s.repo.GetUserByID(ctx, bookerID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: item %d is not available for booking", domain.ErrValidation, itemID)
	}
	if err := canBookItem(bookerID, item); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Start:    start,
		End:      end,
		ItemID:   itemID,
		BookerID: bookerID,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.publishBookingEvent(events.EventBookingCreated, booking, item.OwnerID)

	return booking, nil
}

// ChangeStatus approves or rejects a waiting booking. Approval is a
// one-way gate: any further status change fails. Rejecting an already
// rejected booking is a no-op write and succeeds.
func (s *BookingService) ChangeStatus(ctx context.Context, bookingID, userID int64, approved bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if err := canChangeBookingStatus(userID, item); err != nil {
		return nil, err
	}
	if booking.Status == models.StatusApproved {
		return nil, fmt.Errorf("%w: booking %d is already approved", domain.ErrValidation, bookingID)
	}

	target := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		target = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	// Compare-and-swap on the status read above; a concurrent change
	// leaves zero rows updated.
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, booking.Status, target); err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			current, rerr := s.repo.GetBooking(ctx, bookingID)
			if rerr == nil && current.Status == models.StatusApproved {
				return nil, fmt.Errorf("%w: booking %d is already approved", domain.ErrValidation, bookingID)
			}
		}
		return nil, err
	}
	booking.Status = target

	metrics.IncStatusChange(string(target))
	s.publishBookingEvent(eventType, booking, item.OwnerID)

	return booking, nil
}

// GetByID returns a booking to its booker or the item owner. Anyone else
// gets not-found.
func (s *BookingService) GetByID(ctx context.Context, bookingID, userID int64) (*models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if err := canViewBooking(booking, item, userID); err != nil {
		return nil, err
	}
	return booking, nil
}

// ListByBooker returns the caller's bookings in the requested state
// bucket, newest start first.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, stateToken string, page domain.Page) ([]*models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, bookerID); err != nil {
		return nil, err
	}
	state, err := domain.ParseStateFilter(stateToken)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	return s.repo.ListBookingsByBooker(ctx, bookerID, state, now, page)
}

// ListByOwner returns bookings of all items the caller owns, newest start
// first.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, stateToken string, page domain.Page) ([]*models.Booking, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	state, err := domain.ParseStateFilter(stateToken)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	return s.repo.ListBookingsByOwner(ctx, ownerID, state, now, page)
}

func (s *BookingService) publishBookingEvent(eventType string, booking *models.Booking, ownerID int64) {
	if s.bus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		OwnerID:   ownerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
	}

	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
