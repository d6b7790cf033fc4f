package service

import (
	"context"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// CommentService gates post-rental comments through the booking engine's
// eligibility check.
type CommentService struct {
	repo   domain.Repository
	engine domain.BookingEngine
	clock  func() time.Time
	logger *zerolog.Logger
}

func NewCommentService(repo domain.Repository, engine domain.BookingEngine, logger *zerolog.Logger) *CommentService {
	return &CommentService{
		repo:   repo,
		engine: engine,
		clock:  time.Now,
		logger: logger,
	}
}

func (s *CommentService) Add(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	ok, err := s.engine.CanComment(ctx, author.ID, item.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, database.ErrCommentNotAllowed
	}

	comment := &models.Comment{
		Text:       text,
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
