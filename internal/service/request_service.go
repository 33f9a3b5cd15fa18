package service

import (
	"context"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/models"
)

type RequestService struct {
	repo   domain.Repository
	clock  domain.Clock
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, clock domain.Clock, logger *zerolog.Logger) *RequestService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &RequestService{repo: repo, clock: clock, logger: logger}
}

func (s *RequestService) Add(ctx context.Context, requestorID int64, description string) (*models.ItemRequestDetails, error) {
	if _, err := s.repo.GetUserByID(ctx, requestorID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		Description: description,
		RequestorID: requestorID,
		Created:     s.clock.Now(),
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return &models.ItemRequestDetails{ItemRequest: *request, Items: []models.Item{}}, nil
}

func (s *RequestService) GetByID(ctx context.Context, id, userID int64) (*models.ItemRequestDetails, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, request)
}

// ListOwn returns the caller's requests, newest first.
func (s *RequestService) ListOwn(ctx context.Context, requestorID int64) ([]*models.ItemRequestDetails, error) {
	if _, err := s.repo.GetUserByID(ctx, requestorID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetRequestsByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.detailAll(ctx, requests)
}

// ListOthers returns requests posted by other users, newest first.
func (s *RequestService) ListOthers(ctx context.Context, userID int64, page domain.Page) ([]*models.ItemRequestDetails, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetRequestsOfOthers(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return s.detailAll(ctx, requests)
}

func (s *RequestService) withItems(ctx context.Context, request *models.ItemRequest) (*models.ItemRequestDetails, error) {
	items, err := s.repo.GetItemsByRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	flat := make([]models.Item, 0, len(items))
	for _, item := range items {
		flat = append(flat, *item)
	}
	return &models.ItemRequestDetails{ItemRequest: *request, Items: flat}, nil
}

func (s *RequestService) detailAll(ctx context.Context, requests []*models.ItemRequest) ([]*models.ItemRequestDetails, error) {
	details := make([]*models.ItemRequestDetails, 0, len(requests))
	for _, request := range requests {
		d, err := s.withItems(ctx, request)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}
