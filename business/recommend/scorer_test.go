package recommend

import (
	"context"
	"myBeautyMarket/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentScorer(t *testing.T) {
	repo := seedCatalog()
	scorer := contentScorer{repo: repo}
	seed := repo.products["B001"]

	out, err := scorer.score(context.Background(), seed, 10)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	for _, c := range out {
		assert.NotEqual(t, seed.ProductID, c.ProductID)
		assert.Equal(t, domain.StrategyContent, c.Strategy)
	}

	// "rose face cream spf" shares the most text with the seed
	assert.Equal(t, "B002", out[0].ProductID)
}

func TestContentScorer_PriceBandExcludesOutliers(t *testing.T) {
	repo := seedCatalog()
	repo.products["B099"] = domain.ProductStats{
		ProductID: "B099", ProductType: "skincare",
		ProductTitle: "rose hydrating face cream deluxe", Price: 95,
	}
	repo.contentPool = append(repo.contentPool, repo.products["B099"])

	scorer := contentScorer{repo: repo}
	out, err := scorer.score(context.Background(), repo.products["B001"], 10)
	require.NoError(t, err)

	// seed price 20, band [10, 30]: the 95 lookalike stays out
	for _, c := range out {
		assert.NotEqual(t, "B099", c.ProductID)
	}
}

func TestContentScorer_TruncatesToLimit(t *testing.T) {
	repo := seedCatalog()
	scorer := contentScorer{repo: repo}

	out, err := scorer.score(context.Background(), repo.products["B001"], 2)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestCollaborativeScorer(t *testing.T) {
	repo := seedCatalog()
	scorer := collaborativeScorer{repo: repo, cfg: DefaultConfig()}

	out, err := scorer.score(context.Background(), "B001", 10)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// more co-raters outranks a higher average rating
	assert.Equal(t, "B003", out[0].ProductID)
	assert.Equal(t, "B005", out[1].ProductID)
	assert.Greater(t, out[0].RawScore, out[1].RawScore)

	assert.InDelta(t, 3+4.6/10, out[0].RawScore, 1e-9)
	assert.InDelta(t, 2+4.9/10, out[1].RawScore, 1e-9)
}

func TestCollaborativeScorer_NoCoRaters(t *testing.T) {
	repo := seedCatalog()
	repo.coRaters = nil
	scorer := collaborativeScorer{repo: repo, cfg: DefaultConfig()}

	out, err := scorer.score(context.Background(), "B001", 10)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, repo.calls["RatingsByUsers"], "no co-raters means no second query")
}

func TestTrendingScorer(t *testing.T) {
	repo := seedCatalog()
	scorer := trendingScorer{repo: repo, cfg: DefaultConfig(), now: time.Now}

	out, err := scorer.score(context.Background(), repo.products["B001"], 10)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// raw score is review volume times average rating
	assert.Equal(t, "B005", out[0].ProductID)
	assert.InDelta(t, 300*4.8, out[0].RawScore, 1e-9)
	assert.Equal(t, "B003", out[1].ProductID)
	assert.InDelta(t, 200*4.7, out[1].RawScore, 1e-9)
}

func TestTrendingScorer_DropsThinlyReviewed(t *testing.T) {
	repo := seedCatalog()
	repo.trending = append(repo.trending, domain.TrendingProduct{
		ProductID: "B004", ReviewCount: 3, AvgRating: 5.0,
	})
	scorer := trendingScorer{repo: repo, cfg: DefaultConfig(), now: time.Now}

	out, err := scorer.score(context.Background(), repo.products["B001"], 10)
	require.NoError(t, err)

	for _, c := range out {
		assert.NotEqual(t, "B004", c.ProductID, "below the review floor is noise")
	}
}

func TestTrendingScorer_TruncatesToLimit(t *testing.T) {
	repo := seedCatalog()
	scorer := trendingScorer{repo: repo, cfg: DefaultConfig(), now: time.Now}

	out, err := scorer.score(context.Background(), repo.products["B001"], 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "B005", out[0].ProductID)
}
