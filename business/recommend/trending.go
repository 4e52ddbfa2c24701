package recommend

import (
	"context"
	"fmt"
	"myBeautyMarket/domain"
	"sort"
	"time"
)

// trendingScorer surfaces currently popular products within the seed's
// category.
type trendingScorer struct {
	repo CatalogRepository
	cfg  Config
	now  func() time.Time
}

func (s trendingScorer) score(ctx context.Context, seed domain.ProductStats, limit int) ([]domain.CandidateScore, error) {
	if limit <= 0 {
		return []domain.CandidateScore{}, nil
	}

	// zero lookback means the whole rating history counts
	var since time.Time
	if s.cfg.TrendLookback > 0 {
		since = s.now().Add(-s.cfg.TrendLookback)
	}

	rows, err := s.repo.TrendingInCategory(ctx, seed.ProductID, seed.ProductType, s.cfg.MinReviews, since)
	if err != nil {
		return nil, fmt.Errorf("load trending products: %w", err)
	}

	out := make([]domain.CandidateScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CandidateScore{
			ProductID: row.ProductID,
			Strategy:  domain.StrategyTrending,
			RawScore:  float64(row.ReviewCount) * row.AvgRating,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].RawScore != out[j].RawScore {
			return out[i].RawScore > out[j].RawScore
		}
		return out[i].ProductID < out[j].ProductID
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
