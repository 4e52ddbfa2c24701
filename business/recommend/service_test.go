package recommend

import (
	"context"
	"errors"
	"myBeautyMarket/domain"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is an in-memory CatalogRepository that counts every call so
// tests can assert how often the store was touched.
type fakeCatalog struct {
	mu    sync.Mutex
	calls map[string]int

	products    map[string]domain.ProductStats
	contentPool []domain.ProductStats
	coRaters    []string
	coRated     []domain.CoRatedProduct
	trending    []domain.TrendingProduct
	crossSell   []domain.CrossSellItem
	upSell      []domain.UpSellItem

	findErr     error
	contentErr  error
	coRatersErr error
	ratingsErr  error
	trendingErr error
	byIDsErr    error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		calls:    make(map[string]int),
		products: make(map[string]domain.ProductStats),
	}
}

func (f *fakeCatalog) record(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeCatalog) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeCatalog) FindProduct(_ context.Context, productID string) (domain.ProductStats, error) {
	f.record("FindProduct")
	if f.findErr != nil {
		return domain.ProductStats{}, f.findErr
	}
	p, ok := f.products[productID]
	if !ok {
		return domain.ProductStats{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) CandidatesByPriceAndCategory(_ context.Context, seedID string, lowPrice, highPrice float64, _ string) ([]domain.ProductStats, error) {
	f.record("CandidatesByPriceAndCategory")
	if f.contentErr != nil {
		return nil, f.contentErr
	}
	out := make([]domain.ProductStats, 0, len(f.contentPool))
	for _, p := range f.contentPool {
		if p.ProductID == seedID {
			continue
		}
		if p.Price < lowPrice || p.Price > highPrice {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) CoRaters(_ context.Context, _ string, _ float64) ([]string, error) {
	f.record("CoRaters")
	if f.coRatersErr != nil {
		return nil, f.coRatersErr
	}
	return f.coRaters, nil
}

func (f *fakeCatalog) RatingsByUsers(_ context.Context, _ []string, excludeID string, _ float64) ([]domain.CoRatedProduct, error) {
	f.record("RatingsByUsers")
	if f.ratingsErr != nil {
		return nil, f.ratingsErr
	}
	out := make([]domain.CoRatedProduct, 0, len(f.coRated))
	for _, row := range f.coRated {
		if row.ProductID == excludeID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeCatalog) TrendingInCategory(_ context.Context, seedID, _ string, minReviews int64, _ time.Time) ([]domain.TrendingProduct, error) {
	f.record("TrendingInCategory")
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	out := make([]domain.TrendingProduct, 0, len(f.trending))
	for _, row := range f.trending {
		if row.ProductID == seedID || row.ReviewCount < minReviews {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeCatalog) ProductsByIDs(_ context.Context, productIDs []string) ([]domain.ProductStats, error) {
	f.record("ProductsByIDs")
	if f.byIDsErr != nil {
		return nil, f.byIDsErr
	}
	out := make([]domain.ProductStats, 0, len(productIDs))
	for _, id := range productIDs {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FrequentlyCoRated(_ context.Context, _ []string, _ float64, _ int64, limit int) ([]domain.CrossSellItem, error) {
	f.record("FrequentlyCoRated")
	if len(f.crossSell) > limit {
		return f.crossSell[:limit], nil
	}
	return f.crossSell, nil
}

func (f *fakeCatalog) UpgradesInCategories(_ context.Context, _, _ []string, _ float64, _ int64, limit int) ([]domain.UpSellItem, error) {
	f.record("UpgradesInCategories")
	if len(f.upSell) > limit {
		return f.upSell[:limit], nil
	}
	return f.upSell, nil
}

func seedCatalog() *fakeCatalog {
	repo := newFakeCatalog()
	repo.products = map[string]domain.ProductStats{
		"B001": {ProductID: "B001", ProductType: "skincare", ProductTitle: "rose hydrating face cream", Price: 20, AvgRating: 4.5, ReviewCount: 120},
		"B002": {ProductID: "B002", ProductType: "skincare", ProductTitle: "rose face cream spf", Price: 22, AvgRating: 4.2, ReviewCount: 80},
		"B003": {ProductID: "B003", ProductType: "skincare", ProductTitle: "hydrating face serum", Price: 18, AvgRating: 4.7, ReviewCount: 200},
		"B004": {ProductID: "B004", ProductType: "skincare", ProductTitle: "charcoal clay mask", Price: 25, AvgRating: 3.9, ReviewCount: 40},
		"B005": {ProductID: "B005", ProductType: "skincare", ProductTitle: "vitamin c brightening serum", Price: 28, AvgRating: 4.8, ReviewCount: 300},
	}
	repo.contentPool = []domain.ProductStats{
		repo.products["B002"],
		repo.products["B003"],
		repo.products["B004"],
	}
	repo.coRaters = []string{"u1", "u2", "u3"}
	repo.coRated = []domain.CoRatedProduct{
		{ProductID: "B003", UserCount: 3, AvgRating: 4.6},
		{ProductID: "B005", UserCount: 2, AvgRating: 4.9},
	}
	repo.trending = []domain.TrendingProduct{
		{ProductID: "B005", ReviewCount: 300, AvgRating: 4.8},
		{ProductID: "B003", ReviewCount: 200, AvgRating: 4.7},
	}
	return repo
}

func TestGetRecommendations_ExcludesSeedAndRespectsK(t *testing.T) {
	repo := seedCatalog()
	svc := NewService(repo, nil, DefaultConfig())

	recs := svc.GetRecommendations(context.Background(), "B001", 3)

	require.NotEmpty(t, recs)
	assert.LessOrEqual(t, len(recs), 3)
	for _, rec := range recs {
		assert.NotEqual(t, "B001", rec.ProductID, "seed must never recommend itself")
	}
}

func TestGetRecommendations_UnknownSeedReturnsEmpty(t *testing.T) {
	repo := seedCatalog()
	svc := NewService(repo, nil, DefaultConfig())

	recs := svc.GetRecommendations(context.Background(), "nope", 4)

	assert.Empty(t, recs)
	assert.Equal(t, 1, repo.calls["FindProduct"], "unknown seed stops before the scorers run")
}

func TestGetRecommendations_Deterministic(t *testing.T) {
	repo := seedCatalog()
	svc := NewService(repo, nil, DefaultConfig())

	first := svc.GetRecommendations(context.Background(), "B001", 4)
	second := svc.GetRecommendations(context.Background(), "B001", 4)

	assert.Equal(t, first, second, "same catalog state must rank identically")
}

func TestGetRecommendations_DefaultsKWhenNonPositive(t *testing.T) {
	repo := seedCatalog()
	svc := NewService(repo, nil, DefaultConfig())

	recs := svc.GetRecommendations(context.Background(), "B001", 0)

	assert.LessOrEqual(t, len(recs), defaultK)
	assert.NotEmpty(t, recs)
}

func TestGetRecommendations_AllScorersFailReturnsEmpty(t *testing.T) {
	repo := seedCatalog()
	repo.contentErr = errors.New("content query failed")
	repo.coRatersErr = errors.New("co-rater query failed")
	repo.trendingErr = errors.New("trending query failed")
	svc := NewService(repo, nil, DefaultConfig())

	recs := svc.GetRecommendations(context.Background(), "B001", 4)

	assert.Empty(t, recs)
}

func TestGetRecommendations_SingleScorerFailureDegrades(t *testing.T) {
	repo := seedCatalog()
	repo.coRatersErr = errors.New("co-rater query failed")
	svc := NewService(repo, nil, DefaultConfig())

	recs := svc.GetRecommendations(context.Background(), "B001", 4)

	require.NotEmpty(t, recs, "one failed strategy must not empty the result")
	for _, rec := range recs {
		assert.Zero(t, rec.Breakdown.Collaborative)
	}
}

func TestGetRecommendations_ContentOnlyWhenOthersEmpty(t *testing.T) {
	repo := seedCatalog()
	repo.coRaters = nil
	repo.trending = nil
	svc := NewService(repo, nil, DefaultConfig())

	recs := svc.GetRecommendations(context.Background(), "B001", 4)

	require.NotEmpty(t, recs)
	for _, rec := range recs {
		assert.Zero(t, rec.Breakdown.Collaborative)
		assert.Zero(t, rec.Breakdown.Trending)
		assert.Equal(t, rec.Breakdown.Content, rec.CombinedScore)
	}
	// the textually closest product to "rose hydrating face cream" wins
	assert.Equal(t, "B002", recs[0].ProductID)
}

func TestGetRecommendations_HydrationFailureKeepsRanking(t *testing.T) {
	repo := seedCatalog()
	repo.byIDsErr = errors.New("hydration query failed")
	svc := NewService(repo, nil, DefaultConfig())

	recs := svc.GetRecommendations(context.Background(), "B001", 4)

	require.NotEmpty(t, recs, "missing details must not drop the ranking")
	for _, rec := range recs {
		assert.Empty(t, rec.ProductTitle)
		assert.NotEmpty(t, rec.ProductID)
	}
}

func TestGetRecommendations_CacheHitSkipsStore(t *testing.T) {
	repo := seedCatalog()
	cache := NewMemoryCache(time.Hour)
	svc := NewService(repo, cache, DefaultConfig())

	first := svc.GetRecommendations(context.Background(), "B001", 4)
	require.NotEmpty(t, first)

	queriesAfterFirst := repo.totalCalls()
	second := svc.GetRecommendations(context.Background(), "B001", 4)

	assert.Equal(t, first, second)
	assert.Equal(t, queriesAfterFirst, repo.totalCalls(), "a cache hit must not touch the store at all")
}

func TestGetRecommendations_DistinctKKeysDistinctEntries(t *testing.T) {
	repo := seedCatalog()
	cache := NewMemoryCache(time.Hour)
	svc := NewService(repo, cache, DefaultConfig())

	svc.GetRecommendations(context.Background(), "B001", 2)
	queriesAfterFirst := repo.totalCalls()

	svc.GetRecommendations(context.Background(), "B001", 3)

	assert.Greater(t, repo.totalCalls(), queriesAfterFirst, "a different k is a different cache entry")
}

func TestGetRecommendations_EmptyResultIsCachedToo(t *testing.T) {
	repo := seedCatalog()
	cache := NewMemoryCache(time.Hour)
	svc := NewService(repo, cache, DefaultConfig())

	first := svc.GetRecommendations(context.Background(), "nope", 4)
	require.Empty(t, first)

	queriesAfterFirst := repo.totalCalls()
	second := svc.GetRecommendations(context.Background(), "nope", 4)

	assert.Empty(t, second)
	assert.Equal(t, queriesAfterFirst, repo.totalCalls())
}

func TestCombine_WeightsAndNormalization(t *testing.T) {
	repo := newFakeCatalog()
	svc := NewService(repo, nil, DefaultConfig())

	content := []domain.CandidateScore{
		{ProductID: "A", Strategy: domain.StrategyContent, RawScore: 0.9},
		{ProductID: "B", Strategy: domain.StrategyContent, RawScore: 0.1},
	}
	collaborative := []domain.CandidateScore{
		{ProductID: "B", Strategy: domain.StrategyCollaborative, RawScore: 5},
		{ProductID: "C", Strategy: domain.StrategyCollaborative, RawScore: 1},
	}
	trending := []domain.CandidateScore{
		{ProductID: "C", Strategy: domain.StrategyTrending, RawScore: 400},
	}

	recs := svc.combine(context.Background(), "seed", content, collaborative, trending, 10)

	require.Len(t, recs, 3)

	byID := make(map[string]domain.Recommendation, len(recs))
	for _, rec := range recs {
		byID[rec.ProductID] = rec
	}

	// A: best content (norm 1.0) and nothing else
	assert.InDelta(t, 0.40, byID["A"].CombinedScore, 1e-9)
	// B: worst content (norm 0.0) + best collaborative (norm 1.0)
	assert.InDelta(t, 0.35, byID["B"].CombinedScore, 1e-9)
	// C: worst collaborative (norm 0.0) + lone trending entry (norm 1.0)
	assert.InDelta(t, 0.25, byID["C"].CombinedScore, 1e-9)

	assert.Equal(t, "A", recs[0].ProductID)
	assert.Equal(t, "B", recs[1].ProductID)
	assert.Equal(t, "C", recs[2].ProductID)
}

func TestCombine_DropsSeedFromUnion(t *testing.T) {
	repo := newFakeCatalog()
	svc := NewService(repo, nil, DefaultConfig())

	collaborative := []domain.CandidateScore{
		{ProductID: "seed", Strategy: domain.StrategyCollaborative, RawScore: 9},
		{ProductID: "X", Strategy: domain.StrategyCollaborative, RawScore: 3},
	}

	recs := svc.combine(context.Background(), "seed", nil, collaborative, nil, 10)

	require.Len(t, recs, 1)
	assert.Equal(t, "X", recs[0].ProductID)
}

func TestNormalizeScores(t *testing.T) {
	t.Run("spread maps to unit interval", func(t *testing.T) {
		norm := normalizeScores([]domain.CandidateScore{
			{ProductID: "A", RawScore: 10},
			{ProductID: "B", RawScore: 5},
			{ProductID: "C", RawScore: 0},
		})

		assert.InDelta(t, 1.0, norm["A"], 1e-9)
		assert.InDelta(t, 0.5, norm["B"], 1e-9)
		assert.InDelta(t, 0.0, norm["C"], 1e-9)
	})

	t.Run("all equal scores normalize to one", func(t *testing.T) {
		norm := normalizeScores([]domain.CandidateScore{
			{ProductID: "A", RawScore: 7},
			{ProductID: "B", RawScore: 7},
		})

		assert.InDelta(t, 1.0, norm["A"], 1e-9)
		assert.InDelta(t, 1.0, norm["B"], 1e-9)
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		assert.Empty(t, normalizeScores(nil))
	})
}

func TestSortRecommendations_TieBreaks(t *testing.T) {
	recs := []domain.Recommendation{
		{ProductID: "C", CombinedScore: 0.5, ReviewCount: 10},
		{ProductID: "A", CombinedScore: 0.5, ReviewCount: 10},
		{ProductID: "B", CombinedScore: 0.5, ReviewCount: 99},
		{ProductID: "D", CombinedScore: 0.9, ReviewCount: 1},
	}

	sortRecommendations(recs)

	// score first, then review count, then id
	assert.Equal(t, "D", recs[0].ProductID)
	assert.Equal(t, "B", recs[1].ProductID)
	assert.Equal(t, "A", recs[2].ProductID)
	assert.Equal(t, "C", recs[3].ProductID)
}
