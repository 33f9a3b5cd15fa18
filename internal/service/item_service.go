package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
)

type ItemService struct {
	repo   domain.Repository
	bus    domain.EventPublisher
	clock  domain.Clock
	logger *zerolog.Logger
}

func NewItemService(repo domain.Repository, bus domain.EventPublisher, clock domain.Clock, logger *zerolog.Logger) *ItemService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &ItemService{
		repo:   repo,
		bus:    bus,
		clock:  clock,
		logger: logger,
	}
}

func (s *ItemService) Add(ctx context.Context, ownerID int64, item models.Item) (*models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if item.RequestID != nil {
		if _, err := s.repo.GetRequestByID(ctx, *item.RequestID); err != nil {
			return nil, err
		}
	}
	item.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies a partial patch; only the owner may edit.
func (s *ItemService) Update(ctx context.Context, itemID, userID int64, patch models.ItemPatch) (*models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := canEditItem(userID, item); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID returns the item with its comments; the last/next approved
// booking summary is filled in only when the viewer owns the item.
func (s *ItemService) GetByID(ctx context.Context, itemID, viewerID int64) (*models.ItemDetails, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details := &models.ItemDetails{Item: *item}
	if viewerID == item.OwnerID {
		now := s.clock.Now()
		if err := s.attachBookings(ctx, details, now); err != nil {
			return nil, err
		}
	}

	comments, err := s.repo.GetCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	details.Comments = comments
	return details, nil
}

// ListByOwner returns the caller's items with booking summaries and
// comments. The scope itself guarantees the caller owns every item.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]*models.ItemDetails, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.GetItemsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	details := make([]*models.ItemDetails, 0, len(items))
	for _, item := range items {
		d := &models.ItemDetails{Item: *item}
		if err := s.attachBookings(ctx, d, now); err != nil {
			return nil, err
		}
		comments, err := s.repo.GetCommentsByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		d.Comments = comments
		details = append(details, d)
	}
	return details, nil
}

// Search matches available items by name or description. An empty query
// yields an empty result, not all items.
func (s *ItemService) Search(ctx context.Context, text string, page domain.Page) ([]*models.Item, error) {
	if text == "" {
		return []*models.Item{}, nil
	}
	return s.repo.SearchItems(ctx, text, page)
}

// Delete removes an item; only the owner may delete.
func (s *ItemService) Delete(ctx context.Context, itemID, userID int64) error {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := canEditItem(userID, item); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, itemID)
}

// AddComment stores a comment by a renter who finished an approved
// booking of the item before now.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID int64, text string) (*models.Comment, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	finished, err := s.repo.CountFinishedBookings(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if finished == 0 {
		return nil, fmt.Errorf("%w: user %d has no finished booking of item %d", domain.ErrValidation, authorID, item.ID)
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.bus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: itemID, AuthorID: authorID}
		if err := s.bus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}

	return comment, nil
}

func (s *ItemService) attachBookings(ctx context.Context, details *models.ItemDetails, now time.Time) error {
	bookings, err := s.repo.GetApprovedBookingsByItem(ctx, details.ID)
	if err != nil {
		return err
	}
	last, next := lastAndNextBooking(bookings, now)
	details.LastBooking = last.Ref()
	details.NextBooking = next.Ref()
	return nil
}

// lastAndNextBooking picks, in one pass, the booking with the greatest
// start strictly before now and the one with the smallest start strictly
// after now. A booking starting exactly at now lands in neither slot.
func lastAndNextBooking(bookings []*models.Booking, now time.Time) (last, next *models.Booking) {
	for _, b := range bookings {
		switch {
		case b.Start.Before(now):
			if last == nil || b.Start.After(last.Start) {
				last = b
			}
		case b.Start.After(now):
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		}
	}
	return last, next
}
