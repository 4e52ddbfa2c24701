package postgres

import (
	"context"
	"fmt"
	"myBeautyMarket/domain"
	"time"

	"gorm.io/gorm"
)

// CatalogRepository serves the recommendation engine's read-only queries:
// one parameterized query per scoring responsibility.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{
		DB: db,
	}
}

func (r *CatalogRepository) FindProduct(ctx context.Context, productID string) (domain.ProductStats, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProductStats{}, fmt.Errorf("context error: %w", err)
	}

	var row domain.ProductStats

	res := r.DB.WithContext(ctx).Raw(`
		SELECT p.product_id,
		       p.product_type,
		       p.product_title,
		       p.image_url,
		       p.price,
		       COALESCE(AVG(re.rating), 0)      AS avg_rating,
		       COUNT(DISTINCT re.user_id)       AS review_count
		FROM products p
		LEFT JOIN rating_events re ON re.product_id = p.product_id
		WHERE p.product_id = ?
		GROUP BY p.product_id, p.product_type, p.product_title, p.image_url, p.price`,
		productID,
	).Scan(&row)
	if res.Error != nil {
		return domain.ProductStats{}, fmt.Errorf("failed to find product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ProductStats{}, domain.ErrProductNotFound
	}

	return row, nil
}

// CandidatesByPriceAndCategory is the content scorer's candidate pool: other
// products inside the price band whose category overlaps the hint.
func (r *CatalogRepository) CandidatesByPriceAndCategory(ctx context.Context, seedID string, lowPrice, highPrice float64, categoryHint string) ([]domain.ProductStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ProductStats

	err := r.DB.WithContext(ctx).Raw(`
		SELECT p.product_id,
		       p.product_type,
		       p.product_title,
		       p.image_url,
		       p.price,
		       COALESCE(AVG(re.rating), 0)      AS avg_rating,
		       COUNT(DISTINCT re.user_id)       AS review_count
		FROM products p
		LEFT JOIN rating_events re ON re.product_id = p.product_id
		WHERE p.product_id <> ?
		  AND p.price BETWEEN ? AND ?
		  AND p.product_type LIKE ?
		GROUP BY p.product_id, p.product_type, p.product_title, p.image_url, p.price`,
		seedID, lowPrice, highPrice, "%"+categoryHint+"%",
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load content candidates: %w", err)
	}

	return rows, nil
}

// CoRaters lists the users who rated the seed at or above the threshold.
func (r *CatalogRepository) CoRaters(ctx context.Context, seedID string, minRating float64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var userIDs []string

	err := r.DB.WithContext(ctx).Raw(`
		SELECT DISTINCT user_id
		FROM rating_events
		WHERE product_id = ? AND rating >= ?`,
		seedID, minRating,
	).Scan(&userIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load co-raters: %w", err)
	}

	return userIDs, nil
}

// RatingsByUsers aggregates the given users' other high ratings per product.
func (r *CatalogRepository) RatingsByUsers(ctx context.Context, userIDs []string, excludeID string, minRating float64) ([]domain.CoRatedProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(userIDs) == 0 {
		return []domain.CoRatedProduct{}, nil
	}

	var rows []domain.CoRatedProduct

	err := r.DB.WithContext(ctx).Raw(`
		SELECT product_id,
		       COUNT(DISTINCT user_id) AS user_count,
		       AVG(rating)             AS avg_rating
		FROM rating_events
		WHERE user_id IN ?
		  AND product_id <> ?
		  AND rating >= ?
		GROUP BY product_id
		HAVING AVG(rating) >= ?
		ORDER BY user_count DESC, avg_rating DESC`,
		userIDs, excludeID, minRating, minRating,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load co-rated products: %w", err)
	}

	return rows, nil
}

// TrendingInCategory aggregates rating activity per product within one
// category. A zero since means the whole history.
func (r *CatalogRepository) TrendingInCategory(ctx context.Context, seedID, category string, minReviews int64, since time.Time) ([]domain.TrendingProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.TrendingProduct

	query := `
		SELECT re.product_id,
		       COUNT(DISTINCT re.user_id) AS review_count,
		       AVG(re.rating)             AS avg_rating
		FROM rating_events re
		JOIN products p ON p.product_id = re.product_id
		WHERE re.product_id <> ?
		  AND p.product_type LIKE ?`
	args := []any{seedID, "%" + category + "%"}

	if !since.IsZero() {
		query += ` AND re.rated_at >= ?`
		args = append(args, since)
	}

	query += `
		GROUP BY re.product_id
		HAVING COUNT(DISTINCT re.user_id) >= ?
		ORDER BY review_count DESC, avg_rating DESC`
	args = append(args, minReviews)

	err := r.DB.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load trending products: %w", err)
	}

	return rows, nil
}

// ProductsByIDs hydrates product details plus rating aggregates for a set of
// candidate ids.
func (r *CatalogRepository) ProductsByIDs(ctx context.Context, productIDs []string) ([]domain.ProductStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(productIDs) == 0 {
		return []domain.ProductStats{}, nil
	}

	var rows []domain.ProductStats

	err := r.DB.WithContext(ctx).Raw(`
		SELECT p.product_id,
		       p.product_type,
		       p.product_title,
		       p.image_url,
		       p.price,
		       COALESCE(AVG(re.rating), 0)      AS avg_rating,
		       COUNT(DISTINCT re.user_id)       AS review_count
		FROM products p
		LEFT JOIN rating_events re ON re.product_id = p.product_id
		WHERE p.product_id IN ?
		GROUP BY p.product_id, p.product_type, p.product_title, p.image_url, p.price`,
		productIDs,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load products by ids: %w", err)
	}

	return rows, nil
}

// FrequentlyCoRated finds products often rated by the same users as the
// cart's items.
func (r *CatalogRepository) FrequentlyCoRated(ctx context.Context, productIDs []string, minRating float64, minFrequency int64, limit int) ([]domain.CrossSellItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(productIDs) == 0 {
		return []domain.CrossSellItem{}, nil
	}

	var rows []domain.CrossSellItem

	err := r.DB.WithContext(ctx).Raw(`
		SELECT re.product_id,
		       p.product_type,
		       p.product_title,
		       p.image_url,
		       p.price,
		       COUNT(DISTINCT re.user_id) AS purchase_frequency,
		       AVG(re.rating)             AS avg_rating
		FROM rating_events re
		JOIN products p ON p.product_id = re.product_id
		WHERE re.user_id IN (
			SELECT DISTINCT user_id FROM rating_events WHERE product_id IN ?
		)
		  AND re.product_id NOT IN ?
		  AND re.rating >= ?
		GROUP BY re.product_id, p.product_type, p.product_title, p.image_url, p.price
		HAVING COUNT(DISTINCT re.user_id) >= ?
		ORDER BY purchase_frequency DESC, avg_rating DESC, re.product_id ASC
		LIMIT ?`,
		productIDs, productIDs, minRating, minFrequency, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cross-sell products: %w", err)
	}

	return rows, nil
}

// UpgradesInCategories finds better-rated alternatives within the cart's
// categories.
func (r *CatalogRepository) UpgradesInCategories(ctx context.Context, categories, excludeIDs []string, minRating float64, minReviews int64, limit int) ([]domain.UpSellItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(categories) == 0 {
		return []domain.UpSellItem{}, nil
	}

	var rows []domain.UpSellItem

	err := r.DB.WithContext(ctx).Raw(`
		SELECT p.product_id,
		       p.product_type,
		       p.product_title,
		       p.image_url,
		       p.price,
		       COUNT(DISTINCT re.user_id) AS review_count,
		       AVG(re.rating)             AS avg_rating
		FROM products p
		JOIN rating_events re ON re.product_id = p.product_id
		WHERE p.product_type IN ?
		  AND p.product_id NOT IN ?
		GROUP BY p.product_id, p.product_type, p.product_title, p.image_url, p.price
		HAVING COUNT(DISTINCT re.user_id) >= ? AND AVG(re.rating) >= ?
		ORDER BY avg_rating DESC, review_count DESC, p.product_id ASC
		LIMIT ?`,
		categories, excludeIDs, minReviews, minRating, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load up-sell products: %w", err)
	}

	return rows, nil
}
