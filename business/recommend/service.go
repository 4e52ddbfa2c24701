package recommend

import (
	"context"
	"errors"
	"fmt"
	"myBeautyMarket/domain"
	"myBeautyMarket/pkg/logger"
	"myBeautyMarket/pkg/metrics"
	"sort"
	"sync"
	"time"
)

// ---- Repository interface ----

// CatalogRepository is the read-only catalog store the engine queries. One
// parameterized query per responsibility; retries, if any, live behind this
// boundary.
type CatalogRepository interface {
	FindProduct(ctx context.Context, productID string) (domain.ProductStats, error)
	CandidatesByPriceAndCategory(ctx context.Context, seedID string, lowPrice, highPrice float64, categoryHint string) ([]domain.ProductStats, error)
	CoRaters(ctx context.Context, seedID string, minRating float64) ([]string, error)
	RatingsByUsers(ctx context.Context, userIDs []string, excludeID string, minRating float64) ([]domain.CoRatedProduct, error)
	TrendingInCategory(ctx context.Context, seedID, category string, minReviews int64, since time.Time) ([]domain.TrendingProduct, error)
	ProductsByIDs(ctx context.Context, productIDs []string) ([]domain.ProductStats, error)
	FrequentlyCoRated(ctx context.Context, productIDs []string, minRating float64, minFrequency int64, limit int) ([]domain.CrossSellItem, error)
	UpgradesInCategories(ctx context.Context, categories, excludeIDs []string, minRating float64, minReviews int64, limit int) ([]domain.UpSellItem, error)
}

// ---- Usecase / Service ----

// Service is the hybrid aggregator: it blends the content, collaborative and
// trending scorers into one deterministic ranked list, memoized through an
// optional result cache.
type Service struct {
	repo  CatalogRepository
	cache Cache
	cfg   Config

	content contentScorer
	collab  collaborativeScorer
	trend   trendingScorer
}

func NewService(repo CatalogRepository, cache Cache, cfg Config) *Service {
	cfg = cfg.normalized()
	return &Service{
		repo:    repo,
		cache:   cache,
		cfg:     cfg,
		content: contentScorer{repo: repo},
		collab:  collaborativeScorer{repo: repo, cfg: cfg},
		trend:   trendingScorer{repo: repo, cfg: cfg, now: time.Now},
	}
}

// GetRecommendations returns up to k related products for the seed. It never
// fails: an unknown seed, a failing store or three empty strategies all
// degrade to a shorter (possibly empty) list.
func (s *Service) GetRecommendations(ctx context.Context, productID string, k int) []domain.Recommendation {
	metrics.RecommendRequests.Inc()

	if k <= 0 {
		k = defaultK
	}
	if productID == "" {
		return []domain.Recommendation{}
	}

	key := cacheKey(productID, k)
	if s.cache != nil {
		if recs, ok := s.cache.Get(ctx, key); ok {
			metrics.CacheHits.Inc()
			return recs
		}
		metrics.CacheMisses.Inc()
	}

	recs := s.compute(ctx, productID, k)

	if s.cache != nil {
		s.cache.Set(ctx, key, recs)
	}

	return recs
}

func cacheKey(productID string, k int) string {
	return fmt.Sprintf("reco:%s:%d", productID, k)
}

func (s *Service) compute(ctx context.Context, productID string, k int) []domain.Recommendation {
	tid := TraceIDFromContext(ctx)

	seed, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			logger.Debug("recommend_seed_unknown", "trace_id", tid, "product_id", productID)
		} else {
			logger.Warn("recommend_seed_lookup_failed", "trace_id", tid, "product_id", productID, "error", err)
		}
		return []domain.Recommendation{}
	}

	limit := k * s.cfg.CandidateMultiplier

	// The scorers are read-only and mutually independent; run them
	// concurrently and wait for all three before combining. A failed scorer
	// counts as an empty candidate set.
	var (
		wg            sync.WaitGroup
		content       []domain.CandidateScore
		collaborative []domain.CandidateScore
		trending      []domain.CandidateScore
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		content = s.runScorer(ctx, domain.StrategyContent, func() ([]domain.CandidateScore, error) {
			return s.content.score(ctx, seed, limit)
		})
	}()
	go func() {
		defer wg.Done()
		collaborative = s.runScorer(ctx, domain.StrategyCollaborative, func() ([]domain.CandidateScore, error) {
			return s.collab.score(ctx, seed.ProductID, limit)
		})
	}()
	go func() {
		defer wg.Done()
		trending = s.runScorer(ctx, domain.StrategyTrending, func() ([]domain.CandidateScore, error) {
			return s.trend.score(ctx, seed, limit)
		})
	}()
	wg.Wait()

	logger.Debug("recommend_candidates",
		"trace_id", tid,
		"product_id", productID,
		"content", len(content),
		"collaborative", len(collaborative),
		"trending", len(trending),
	)

	recs := s.combine(ctx, seed.ProductID, content, collaborative, trending, k)
	if len(recs) == 0 {
		// fallback ladder: content's own top-k verbatim, then the valid
		// terminal empty list
		recs = s.contentFallback(ctx, content, k)
		if len(recs) > 0 {
			metrics.FallbackTotal.Inc()
		}
	}

	return recs
}

func (s *Service) runScorer(ctx context.Context, strategy domain.Strategy, score func() ([]domain.CandidateScore, error)) []domain.CandidateScore {
	out, err := score()
	if err != nil {
		logger.Warn("recommend_scorer_failed",
			"trace_id", TraceIDFromContext(ctx),
			"strategy", string(strategy),
			"error", err,
		)
		metrics.StrategyErrors.WithLabelValues(string(strategy)).Inc()
		return nil
	}

	metrics.StrategyCandidates.WithLabelValues(string(strategy)).Add(float64(len(out)))
	return out
}

// combine unions the per-strategy candidates, min-max normalizes each
// strategy independently, blends with the configured weights and returns the
// top k with full tie-breaking.
func (s *Service) combine(ctx context.Context, seedID string, content, collaborative, trending []domain.CandidateScore, k int) []domain.Recommendation {
	contentNorm := normalizeScores(content)
	collabNorm := normalizeScores(collaborative)
	trendNorm := normalizeScores(trending)

	union := make(map[string]domain.ScoreBreakdown)
	for id, norm := range contentNorm {
		bd := union[id]
		bd.Content = s.cfg.ContentWeight * norm
		union[id] = bd
	}
	for id, norm := range collabNorm {
		bd := union[id]
		bd.Collaborative = s.cfg.CollaborativeWeight * norm
		union[id] = bd
	}
	for id, norm := range trendNorm {
		bd := union[id]
		bd.Trending = s.cfg.TrendingWeight * norm
		union[id] = bd
	}
	delete(union, seedID)

	if len(union) == 0 {
		return []domain.Recommendation{}
	}

	ids := make([]string, 0, len(union))
	for id := range union {
		ids = append(ids, id)
	}
	stats := s.lookupStats(ctx, ids)

	recs := make([]domain.Recommendation, 0, len(union))
	for id, bd := range union {
		rec := domain.Recommendation{
			ProductID:     id,
			CombinedScore: bd.Content + bd.Collaborative + bd.Trending,
			Breakdown:     bd,
		}
		if st, ok := stats[id]; ok {
			rec.ProductType = st.ProductType
			rec.ProductTitle = st.ProductTitle
			rec.ImageURL = st.ImageURL
			rec.Price = st.Price
			rec.AvgRating = st.AvgRating
			rec.ReviewCount = st.ReviewCount
		}
		recs = append(recs, rec)
	}

	sortRecommendations(recs)

	if len(recs) > k {
		recs = recs[:k]
	}

	return recs
}

// contentFallback returns the content scorer's own top-k verbatim: raw
// similarity as the combined score, no other contributions.
func (s *Service) contentFallback(ctx context.Context, content []domain.CandidateScore, k int) []domain.Recommendation {
	if len(content) == 0 {
		return []domain.Recommendation{}
	}
	if len(content) > k {
		content = content[:k]
	}

	ids := make([]string, 0, len(content))
	for _, c := range content {
		ids = append(ids, c.ProductID)
	}
	stats := s.lookupStats(ctx, ids)

	recs := make([]domain.Recommendation, 0, len(content))
	for _, c := range content {
		rec := domain.Recommendation{
			ProductID:     c.ProductID,
			CombinedScore: c.RawScore,
			Breakdown:     domain.ScoreBreakdown{Content: c.RawScore},
		}
		if st, ok := stats[c.ProductID]; ok {
			rec.ProductType = st.ProductType
			rec.ProductTitle = st.ProductTitle
			rec.ImageURL = st.ImageURL
			rec.Price = st.Price
			rec.AvgRating = st.AvgRating
			rec.ReviewCount = st.ReviewCount
		}
		recs = append(recs, rec)
	}

	return recs
}

// lookupStats hydrates product details for the union of candidate ids. A
// failed lookup degrades to empty details rather than failing the request.
func (s *Service) lookupStats(ctx context.Context, ids []string) map[string]domain.ProductStats {
	rows, err := s.repo.ProductsByIDs(ctx, ids)
	if err != nil {
		logger.Warn("recommend_hydration_failed",
			"trace_id", TraceIDFromContext(ctx),
			"error", err,
		)
		return map[string]domain.ProductStats{}
	}

	stats := make(map[string]domain.ProductStats, len(rows))
	for _, row := range rows {
		stats[row.ProductID] = row
	}
	return stats
}

// normalizeScores min-max normalizes one strategy's raw scores to [0,1]. A
// set whose scores are all equal normalizes to 1.0 for every member.
func normalizeScores(candidates []domain.CandidateScore) map[string]float64 {
	if len(candidates) == 0 {
		return map[string]float64{}
	}

	minScore, maxScore := candidates[0].RawScore, candidates[0].RawScore
	for _, c := range candidates[1:] {
		if c.RawScore < minScore {
			minScore = c.RawScore
		}
		if c.RawScore > maxScore {
			maxScore = c.RawScore
		}
	}

	norm := make(map[string]float64, len(candidates))
	spread := maxScore - minScore
	for _, c := range candidates {
		if spread == 0 {
			norm[c.ProductID] = 1.0
			continue
		}
		norm[c.ProductID] = (c.RawScore - minScore) / spread
	}

	return norm
}

// sortRecommendations orders by combined score descending, then review count
// descending, then product id ascending, making the output total and
// reproducible.
func sortRecommendations(recs []domain.Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.CombinedScore != b.CombinedScore {
			return a.CombinedScore > b.CombinedScore
		}
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		return a.ProductID < b.ProductID
	})
}
