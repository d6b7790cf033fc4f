package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}
	request := &models.ItemRequest{Description: description, RequesterID: requesterID}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListOwn returns the requester's requests, newest first, each with the items
// offered in answer.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// ListAll pages through other users' requests.
func (s *RequestService) ListAll(ctx context.Context, requesterID int64, page models.Page) ([]*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}
	size := page.Size
	if size <= 0 {
		size = models.DefaultPageSize
	}
	from := page.From
	if from < 0 {
		from = 0
	}
	requests, err := s.repo.ListRequests(ctx, requesterID, size, from)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *RequestService) GetByID(ctx context.Context, requesterID, requestID int64) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUserByID(ctx, requesterID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	attached, err := s.attachItems(ctx, []*models.ItemRequest{request})
	if err != nil {
		return nil, err
	}
	return attached[0], nil
}

func (s *RequestService) attachItems(ctx context.Context, requests []*models.ItemRequest) ([]*models.ItemRequest, error) {
	for _, r := range requests {
		items, err := s.repo.ListItemsByRequest(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		r.Items = items
	}
	return requests, nil
}
