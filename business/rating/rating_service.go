package rating

import (
	"context"
	"errors"
	"fmt"
	"myBeautyMarket/domain"
	"myBeautyMarket/pkg/logger"
)

// RatingRepository contract interface
type RatingRepository interface {
	Create(ctx context.Context, event *domain.RatingEvent) error
	FindByProduct(ctx context.Context, productID string, limit int) ([]domain.RatingEvent, error)
}

// ProductFinder checks that a rated product exists.
type ProductFinder interface {
	FindByProductID(ctx context.Context, productID string) (domain.Product, error)
}

type ratingService struct {
	ratingRepo  RatingRepository
	productRepo ProductFinder
}

func NewRatingService(ratingRepo RatingRepository, productRepo ProductFinder) *ratingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
	}
}

// SubmitRating appends one rating event. Events are never updated; a user
// rating the same product twice just adds a newer event.
func (s *ratingService) SubmitRating(ctx context.Context, event *domain.RatingEvent) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when submit rating")
		return fmt.Errorf("context error: %w", err)
	}

	if event.ProductID == "" {
		logger.Error("Invalid rating: product id is required")
		return errors.New("product id is required")
	}

	if event.UserID == "" {
		logger.Error("Invalid rating: user id is required")
		return errors.New("user id is required")
	}

	if event.Rating < 0 || event.Rating > 5 {
		logger.Error("Invalid rating: out of range")
		return errors.New("rating must be between 0 and 5")
	}

	if _, err := s.productRepo.FindByProductID(ctx, event.ProductID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return err
		}
		logger.Error("Failed to check rated product", err)
		return err
	}

	if err := s.ratingRepo.Create(ctx, event); err != nil {
		logger.Error("Failed to save rating event", err)
		return err
	}

	return nil
}

// GetProductRatings lists the newest ratings of one product.
func (s *ratingService) GetProductRatings(ctx context.Context, productID string, limit int) ([]domain.RatingEvent, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product ratings")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 20
	}

	events, err := s.ratingRepo.FindByProduct(ctx, productID, limit)
	if err != nil {
		logger.Error("Failed to load product ratings", err)
		return nil, err
	}

	return events, nil
}
