package product

import (
	"context"
	"myBeautyMarket/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[string]domain.Product
	top      []domain.ProductStats
	inCat    []domain.ProductStats
	types    []domain.ProductTypeCount

	gotMinReviews int64
	gotLimit      int
	gotOffset     int
	created       *domain.Product
	deleted       string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]domain.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	f.created = product
	f.products[product.ProductID] = *product
	return nil
}

func (f *fakeProductRepo) FindByProductID(_ context.Context, productID string) (domain.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) TopProducts(_ context.Context, minReviews int64, limit int) ([]domain.ProductStats, error) {
	f.gotMinReviews = minReviews
	f.gotLimit = limit
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakeProductRepo) ListProducts(_ context.Context, offset, limit int) ([]domain.ProductStats, error) {
	f.gotOffset = offset
	f.gotLimit = limit
	return f.inCat, nil
}

func (f *fakeProductRepo) ProductsInCategory(_ context.Context, _ string, offset, limit int) ([]domain.ProductStats, error) {
	f.gotOffset = offset
	f.gotLimit = limit
	return f.inCat, nil
}

func (f *fakeProductRepo) ProductTypes(_ context.Context) ([]domain.ProductTypeCount, error) {
	return f.types, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := f.products[product.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	f.products[product.ProductID] = *product
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, productID string) error {
	if _, ok := f.products[productID]; !ok {
		return domain.ErrProductNotFound
	}
	f.deleted = productID
	delete(f.products, productID)
	return nil
}

type fakeCatalogReader struct {
	stats map[string]domain.ProductStats
}

func (f *fakeCatalogReader) FindProduct(_ context.Context, productID string) (domain.ProductStats, error) {
	st, ok := f.stats[productID]
	if !ok {
		return domain.ProductStats{}, domain.ErrProductNotFound
	}
	return st, nil
}

func TestGetProductDetails(t *testing.T) {
	repo := newFakeProductRepo()
	catalog := &fakeCatalogReader{stats: map[string]domain.ProductStats{
		"B001": {ProductID: "B001", ProductTitle: "rose hydrating face cream", AvgRating: 4.5, ReviewCount: 120},
	}}
	svc := NewProductService(repo, catalog)

	got, err := svc.GetProductDetails(context.Background(), "B001")
	require.NoError(t, err)
	assert.Equal(t, int64(120), got.ReviewCount)

	_, err = svc.GetProductDetails(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.GetProductDetails(context.Background(), "")
	assert.EqualError(t, err, "invalid product id")
}

func TestGetTopProducts(t *testing.T) {
	repo := newFakeProductRepo()
	repo.top = []domain.ProductStats{
		{ProductID: "B005"}, {ProductID: "B003"},
	}
	svc := NewProductService(repo, &fakeCatalogReader{})

	got, err := svc.GetTopProducts(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 5, repo.gotLimit, "non-positive limit falls back to the default")
	assert.Equal(t, int64(topProductsMinReviews), repo.gotMinReviews)
}

func TestGetCategoryProducts(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, &fakeCatalogReader{})

	_, err := svc.GetCategoryProducts(context.Background(), "", 1)
	assert.EqualError(t, err, "category is required")

	_, err = svc.GetCategoryProducts(context.Background(), "skincare", 3)
	require.NoError(t, err)
	assert.Equal(t, 2*categoryPageSize, repo.gotOffset)
	assert.Equal(t, categoryPageSize, repo.gotLimit)
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, &fakeCatalogReader{})

	valid := &domain.Product{ProductID: "B010", ProductType: "skincare", ProductTitle: "aloe gel", Price: 9.5}

	created, err := svc.CreateProduct(context.Background(), valid)
	require.NoError(t, err)
	assert.Equal(t, valid, created)
	assert.Equal(t, valid, repo.created)

	_, err = svc.CreateProduct(context.Background(), valid)
	assert.EqualError(t, err, "product id already exists")

	_, err = svc.CreateProduct(context.Background(), &domain.Product{ProductType: "skincare", ProductTitle: "x y", Price: 1})
	assert.EqualError(t, err, "product id is required")

	_, err = svc.CreateProduct(context.Background(), &domain.Product{ProductID: "B011", ProductType: "skincare", ProductTitle: "x y"})
	assert.EqualError(t, err, "price must be greater than 0")
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	repo := newFakeProductRepo()
	repo.products["B010"] = domain.Product{ProductID: "B010", ProductTitle: "aloe gel", Price: 9.5}
	svc := NewProductService(repo, &fakeCatalogReader{})

	updated, err := svc.UpdateProduct(context.Background(), &domain.Product{ProductID: "B010", ProductTitle: "aloe gel xl", Price: 12})
	require.NoError(t, err)
	assert.Equal(t, "aloe gel xl", updated.ProductTitle)

	_, err = svc.UpdateProduct(context.Background(), &domain.Product{ProductID: "nope", Price: 12})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	require.NoError(t, svc.DeleteProduct(context.Background(), "B010"))
	assert.Equal(t, "B010", repo.deleted)

	err = svc.DeleteProduct(context.Background(), "B010")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
