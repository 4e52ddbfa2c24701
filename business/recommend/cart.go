package recommend

import (
	"context"
	"myBeautyMarket/domain"
	"myBeautyMarket/pkg/logger"
)

const (
	crossSellMinFrequency = 10
	crossSellLimit        = 5
	upSellMinReviews      = 20
	upSellLimit           = 3
)

// CartRecommendations pairs cross-sell products (frequently co-rated with
// the cart's items) with up-sell products (higher-rated alternatives from
// the cart's categories). Faults degrade to empty sections.
func (s *Service) CartRecommendations(ctx context.Context, productIDs []string) domain.CartSuggestions {
	out := domain.CartSuggestions{
		CrossSell: []domain.CrossSellItem{},
		UpSell:    []domain.UpSellItem{},
	}
	if len(productIDs) == 0 {
		return out
	}

	tid := TraceIDFromContext(ctx)

	cartStats, err := s.repo.ProductsByIDs(ctx, productIDs)
	if err != nil {
		logger.Warn("cart_lookup_failed", "trace_id", tid, "error", err)
		return out
	}
	if len(cartStats) == 0 {
		return out
	}

	cross, err := s.repo.FrequentlyCoRated(ctx, productIDs, s.cfg.HighRating, crossSellMinFrequency, crossSellLimit)
	if err != nil {
		logger.Warn("cart_cross_sell_failed", "trace_id", tid, "error", err)
	} else {
		for i := range cross {
			cross[i].SuggestedDiscount = discountForFrequency(cross[i].PurchaseFrequency)
		}
		out.CrossSell = cross
	}

	categories := make([]string, 0, len(cartStats))
	seen := make(map[string]struct{}, len(cartStats))
	var ratingSum float64
	for _, st := range cartStats {
		ratingSum += st.AvgRating
		if _, ok := seen[st.ProductType]; ok {
			continue
		}
		seen[st.ProductType] = struct{}{}
		categories = append(categories, st.ProductType)
	}
	cartAvg := ratingSum / float64(len(cartStats))

	ups, err := s.repo.UpgradesInCategories(ctx, categories, productIDs, cartAvg, upSellMinReviews, upSellLimit)
	if err != nil {
		logger.Warn("cart_up_sell_failed", "trace_id", tid, "error", err)
	} else {
		for i := range ups {
			ups[i].UpgradeReason = upgradeReason(ups[i].AvgRating, cartAvg)
		}
		out.UpSell = ups
	}

	return out
}

// discount tiers by how often the product was rated together with the cart
func discountForFrequency(frequency int64) int {
	switch {
	case frequency > 100:
		return 15
	case frequency > 50:
		return 10
	default:
		return 5
	}
}

func upgradeReason(itemRating, cartAvg float64) string {
	switch {
	case itemRating > cartAvg:
		return "Higher rated product"
	case itemRating == cartAvg:
		return "Premium alternative"
	default:
		return "Popular choice"
	}
}
