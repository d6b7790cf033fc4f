package service

import (
	"context"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// ItemService owns the catalog. Item detail views pull last/next booking
// projections from the booking engine, but only for the item's owner.
type ItemService struct {
	repo   domain.Repository
	engine domain.BookingEngine
	clock  func() time.Time
	logger *zerolog.Logger
}

func NewItemService(repo domain.Repository, engine domain.BookingEngine, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:   repo,
		engine: engine,
		clock:  time.Now,
		logger: logger,
	}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if item.RequestID != nil {
		if _, err := s.repo.GetRequestByID(ctx, *item.RequestID); err != nil {
			return nil, err
		}
	}
	item.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) GetByID(ctx context.Context, requesterID, itemID int64) (*models.ItemDetail, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, item, requesterID == item.OwnerID)
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.ItemDetail, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	lo, hi := page.Bounds(len(items))
	details := make([]*models.ItemDetail, 0, hi-lo)
	for _, item := range items[lo:hi] {
		detail, err := s.detail(ctx, item, true)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *ItemService) Search(ctx context.Context, text string, page models.Page) ([]*models.Item, error) {
	items, err := s.repo.SearchItems(ctx, text)
	if err != nil {
		return nil, err
	}
	lo, hi := page.Bounds(len(items))
	return items[lo:hi], nil
}

// Update applies a partial update; only the owner may change an item.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, database.ErrAccessDenied
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

func (s *ItemService) Delete(ctx context.Context, ownerID, itemID int64) error {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return database.ErrAccessDenied
	}
	return s.repo.DeleteItem(ctx, itemID)
}

func (s *ItemService) detail(ctx context.Context, item *models.Item, ownerView bool) (*models.ItemDetail, error) {
	comments, err := s.repo.ListCommentsForItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	detail := &models.ItemDetail{Item: *item, Comments: comments}
	if ownerView {
		last, next, err := s.engine.ProjectBookingsForItem(ctx, item.ID, s.clock())
		if err != nil {
			return nil, err
		}
		detail.LastBooking = last
		detail.NextBooking = next
	}
	return detail, nil
}
