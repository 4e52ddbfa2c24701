package postgres

import (
	"context"
	"fmt"
	"myBeautyMarket/domain"

	"gorm.io/gorm"
)

// RatingRepository appends rating events. Events are never updated or
// deleted; the engine only reads aggregates over them.
type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{
		DB: db,
	}
}

func (r *RatingRepository) Create(ctx context.Context, event *domain.RatingEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to save rating event: %w", err)
	}

	return nil
}

func (r *RatingRepository) FindByProduct(ctx context.Context, productID string, limit int) ([]domain.RatingEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var events []domain.RatingEvent

	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("rated_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load rating events: %w", err)
	}

	return events, nil
}
