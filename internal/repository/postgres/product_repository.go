package postgres

import (
	"context"
	"errors"
	"fmt"
	"myBeautyMarket/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByProductID(ctx context.Context, productID string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// TopProducts lists the catalog's best-rated products with enough reviews to
// trust the average.
func (r *ProductRepository) TopProducts(ctx context.Context, minReviews int64, limit int) ([]domain.ProductStats, error) {
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
		GROUP BY p.product_id, p.product_type, p.product_title, p.image_url, p.price
		HAVING COUNT(DISTINCT re.user_id) >= ?
		ORDER BY avg_rating DESC, review_count DESC
		LIMIT ?`,
		minReviews, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}

	return rows, nil
}

// ListProducts pages through the whole catalog ordered by rating.
func (r *ProductRepository) ListProducts(ctx context.Context, offset, limit int) ([]domain.ProductStats, error) {
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
		GROUP BY p.product_id, p.product_type, p.product_title, p.image_url, p.price
		ORDER BY avg_rating DESC, review_count DESC, p.product_id ASC
		LIMIT ? OFFSET ?`,
		limit, offset,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return rows, nil
}

// ProductsInCategory pages through one category ordered by rating.
func (r *ProductRepository) ProductsInCategory(ctx context.Context, category string, offset, limit int) ([]domain.ProductStats, error) {
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
		WHERE p.product_type LIKE ?
		GROUP BY p.product_id, p.product_type, p.product_title, p.image_url, p.price
		ORDER BY avg_rating DESC, review_count DESC, p.product_id ASC
		LIMIT ? OFFSET ?`,
		"%"+category+"%", limit, offset,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load category products: %w", err)
	}

	return rows, nil
}

// ProductTypes lists the distinct categories with their product counts; the
// catalog has no separate category table.
func (r *ProductRepository) ProductTypes(ctx context.Context) ([]domain.ProductTypeCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.ProductTypeCount

	err := r.DB.WithContext(ctx).Raw(`
		SELECT p.product_type,
		       COUNT(DISTINCT p.product_id)     AS count,
		       COALESCE(AVG(re.rating), 0)      AS avg_rating
		FROM products p
		LEFT JOIN rating_events re ON re.product_id = p.product_id
		WHERE p.product_type <> ''
		GROUP BY p.product_type
		ORDER BY count DESC, avg_rating DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product types: %w", err)
	}

	return rows, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"product_type":  product.ProductType,
		"product_title": product.ProductTitle,
		"price":         product.Price,
		"image_url":     product.ImageURL,
		"url":           product.URL,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).
		Where("product_id = ?", product.ProductID).
		Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("product_id = ?", productID).Delete(&domain.Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}
