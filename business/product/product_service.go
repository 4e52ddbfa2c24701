package product

import (
	"context"
	"errors"
	"fmt"
	"myBeautyMarket/domain"
	"myBeautyMarket/pkg/logger"
)

const (
	topProductsMinReviews = 10
	categoryPageSize      = 30
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByProductID(ctx context.Context, productID string) (domain.Product, error)
	TopProducts(ctx context.Context, minReviews int64, limit int) ([]domain.ProductStats, error)
	ListProducts(ctx context.Context, offset, limit int) ([]domain.ProductStats, error)
	ProductsInCategory(ctx context.Context, category string, offset, limit int) ([]domain.ProductStats, error)
	ProductTypes(ctx context.Context) ([]domain.ProductTypeCount, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productID string) error
}

// CatalogReader resolves a product together with its rating aggregates.
type CatalogReader interface {
	FindProduct(ctx context.Context, productID string) (domain.ProductStats, error)
}

type productService struct {
	productRepo ProductRepository
	catalog     CatalogReader
}

func NewProductService(productRepo ProductRepository, catalog CatalogReader) *productService {
	return &productService{
		productRepo: productRepo,
		catalog:     catalog,
	}
}

// GetProductDetails returns a product with its rating aggregates.
func (s *productService) GetProductDetails(ctx context.Context, productID string) (domain.ProductStats, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product details")
		return domain.ProductStats{}, fmt.Errorf("context error: %w", err)
	}

	if productID == "" {
		logger.Error("invalid product id")
		return domain.ProductStats{}, errors.New("invalid product id")
	}

	product, err := s.catalog.FindProduct(ctx, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			logger.Error("failed to find product by id", err)
		}
		return domain.ProductStats{}, err
	}

	return product, nil
}

// GetTopProducts lists the catalog's best-rated products.
func (s *productService) GetTopProducts(ctx context.Context, limit int) ([]domain.ProductStats, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get top products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 5
	}

	products, err := s.productRepo.TopProducts(ctx, topProductsMinReviews, limit)
	if err != nil {
		logger.Error("Failed to find top products", err)
		return nil, err
	}

	return products, nil
}

// GetAllProducts pages through the whole catalog ordered by rating.
func (s *productService) GetAllProducts(ctx context.Context, page int) ([]domain.ProductStats, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * categoryPageSize

	products, err := s.productRepo.ListProducts(ctx, offset, categoryPageSize)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	return products, nil
}

// GetCategoryProducts pages through one category ordered by rating.
func (s *productService) GetCategoryProducts(ctx context.Context, category string, page int) ([]domain.ProductStats, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get category products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if category == "" {
		logger.Error("invalid category")
		return nil, errors.New("category is required")
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * categoryPageSize

	products, err := s.productRepo.ProductsInCategory(ctx, category, offset, categoryPageSize)
	if err != nil {
		logger.Error("Failed to find category products", err)
		return nil, err
	}

	return products, nil
}

// GetProductTypes lists the catalog's categories; there is no category
// table, categories are the distinct product_type values.
func (s *productService) GetProductTypes(ctx context.Context) ([]domain.ProductTypeCount, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product types")
		return nil, fmt.Errorf("context error: %w", err)
	}

	types, err := s.productRepo.ProductTypes(ctx)
	if err != nil {
		logger.Error("Failed to find product types", err)
		return nil, err
	}

	return types, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if product.ProductID == "" {
		logger.Error("Invalid product data: product id is required")
		return nil, errors.New("product id is required")
	}

	if product.ProductTitle == "" {
		logger.Error("Invalid product data: product title is required")
		return nil, errors.New("product title is required")
	}

	if product.ProductType == "" {
		logger.Error("Invalid product data: product type is required")
		return nil, errors.New("product type is required")
	}

	if product.Price <= 0 {
		logger.Error("Invalid product data: price must be greater than 0")
		return nil, errors.New("price must be greater than 0")
	}

	if _, err := s.productRepo.FindByProductID(ctx, product.ProductID); err == nil {
		logger.Error("Product id already exists")
		return nil, errors.New("product id already exists")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when update product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ProductID == "" {
		logger.Error("Invalid product data: product id is required")
		return nil, errors.New("product id is required")
	}

	if product.Price <= 0 {
		logger.Error("Invalid product data: price must be greater than 0")
		return nil, errors.New("price must be greater than 0")
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			logger.Error("Failed to update product", err)
		}
		return nil, err
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when delete product")
		return fmt.Errorf("context error: %w", err)
	}

	if productID == "" {
		logger.Error("invalid product id")
		return errors.New("invalid product id")
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			logger.Error("Failed to delete product", err)
		}
		return err
	}

	return nil
}
