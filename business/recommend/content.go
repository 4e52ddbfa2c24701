package recommend

import (
	"context"
	"fmt"
	"myBeautyMarket/domain"
	"sort"
)

// candidate pool price band relative to the seed's price; never widened to
// backfill a short result
const (
	priceBandLow  = 0.5
	priceBandHigh = 1.5
)

// contentScorer ranks catalog products textually similar to the seed within
// its price band and category.
type contentScorer struct {
	repo CatalogRepository
}

func (s contentScorer) score(ctx context.Context, seed domain.ProductStats, limit int) ([]domain.CandidateScore, error) {
	if limit <= 0 {
		return []domain.CandidateScore{}, nil
	}

	pool, err := s.repo.CandidatesByPriceAndCategory(
		ctx,
		seed.ProductID,
		seed.Price*priceBandLow,
		seed.Price*priceBandHigh,
		seed.ProductType,
	)
	if err != nil {
		return nil, fmt.Errorf("load content candidates: %w", err)
	}
	if len(pool) == 0 {
		return []domain.CandidateScore{}, nil
	}

	seedDoc := tokenize(seed.ProductType + " " + seed.ProductTitle)

	docs := make([][]string, 0, len(pool)+1)
	for _, p := range pool {
		docs = append(docs, tokenize(p.ProductType+" "+p.ProductTitle))
	}
	docs = append(docs, seedDoc)

	model := fitTFIDF(docs)
	seedVec := model.vector(seedDoc)

	type scored struct {
		stats domain.ProductStats
		sim   float64
	}

	scoredPool := make([]scored, 0, len(pool))
	for i, p := range pool {
		scoredPool = append(scoredPool, scored{
			stats: p,
			sim:   cosine(seedVec, model.vector(docs[i])),
		})
	}

	sort.Slice(scoredPool, func(i, j int) bool {
		a, b := scoredPool[i], scoredPool[j]
		if a.sim != b.sim {
			return a.sim > b.sim
		}
		if a.stats.ReviewCount != b.stats.ReviewCount {
			return a.stats.ReviewCount > b.stats.ReviewCount
		}
		return a.stats.ProductID < b.stats.ProductID
	})

	if len(scoredPool) > limit {
		scoredPool = scoredPool[:limit]
	}

	out := make([]domain.CandidateScore, 0, len(scoredPool))
	for _, sc := range scoredPool {
		out = append(out, domain.CandidateScore{
			ProductID: sc.stats.ProductID,
			Strategy:  domain.StrategyContent,
			RawScore:  sc.sim,
		})
	}

	return out, nil
}
