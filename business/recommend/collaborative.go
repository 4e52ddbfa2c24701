package recommend

import (
	"context"
	"fmt"
	"myBeautyMarket/domain"
	"sort"
)

// collaborativeScorer surfaces products favored by the users who also rated
// the seed highly.
type collaborativeScorer struct {
	repo CatalogRepository
	cfg  Config
}

func (s collaborativeScorer) score(ctx context.Context, seedID string, limit int) ([]domain.CandidateScore, error) {
	if limit <= 0 {
		return []domain.CandidateScore{}, nil
	}

	coRaters, err := s.repo.CoRaters(ctx, seedID, s.cfg.HighRating)
	if err != nil {
		return nil, fmt.Errorf("load co-raters: %w", err)
	}
	if len(coRaters) == 0 {
		return []domain.CandidateScore{}, nil
	}

	rows, err := s.repo.RatingsByUsers(ctx, coRaters, seedID, s.cfg.HighRating)
	if err != nil {
		return nil, fmt.Errorf("load co-rated products: %w", err)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.UserCount != b.UserCount {
			return a.UserCount > b.UserCount
		}
		if a.AvgRating != b.AvgRating {
			return a.AvgRating > b.AvgRating
		}
		return a.ProductID < b.ProductID
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]domain.CandidateScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CandidateScore{
			ProductID: row.ProductID,
			Strategy:  domain.StrategyCollaborative,
			// avg rating is at most 5, so the /10 term can never reorder
			// distinct user counts
			RawScore: float64(row.UserCount) + row.AvgRating/10,
		})
	}

	return out, nil
}
