package domain

// Strategy tags which scorer produced a candidate.
type Strategy string

const (
	StrategyContent       Strategy = "content"
	StrategyCollaborative Strategy = "collaborative"
	StrategyTrending      Strategy = "trending"
)

// CandidateScore is one scorer's raw opinion of one product. Candidates only
// live for the duration of a single request.
type CandidateScore struct {
	ProductID string
	Strategy  Strategy
	RawScore  float64
}

// ScoreBreakdown holds the per-strategy normalized contributions that went
// into a recommendation's combined score.
type ScoreBreakdown struct {
	Content       float64 `json:"content"`
	Collaborative float64 `json:"collaborative"`
	Trending      float64 `json:"trending"`
}

// Recommendation is one ranked related product. Lists are ordered by
// CombinedScore descending, then ReviewCount descending, then ProductID
// ascending.
type Recommendation struct {
	ProductID     string         `json:"product_id"`
	ProductType   string         `json:"product_type"`
	ProductTitle  string         `json:"product_title"`
	ImageURL      string         `json:"image_url"`
	Price         float64        `json:"price"`
	AvgRating     float64        `json:"avg_rating"`
	ReviewCount   int64          `json:"review_count"`
	CombinedScore float64        `json:"combined_score"`
	Breakdown     ScoreBreakdown `json:"breakdown"`
}

// CrossSellItem is a product frequently rated together with the cart's items.
type CrossSellItem struct {
	ProductID         string  `json:"product_id"`
	ProductType       string  `json:"product_type"`
	ProductTitle      string  `json:"product_title"`
	ImageURL          string  `json:"image_url"`
	Price             float64 `json:"price"`
	PurchaseFrequency int64   `json:"purchase_frequency"`
	AvgRating         float64 `json:"avg_rating"`
	SuggestedDiscount int     `json:"suggested_discount"`
}

// UpSellItem is a higher-rated alternative from the cart's categories.
type UpSellItem struct {
	ProductID     string  `json:"product_id"`
	ProductType   string  `json:"product_type"`
	ProductTitle  string  `json:"product_title"`
	ImageURL      string  `json:"image_url"`
	Price         float64 `json:"price"`
	ReviewCount   int64   `json:"review_count"`
	AvgRating     float64 `json:"avg_rating"`
	UpgradeReason string  `json:"upgrade_reason"`
}

// CartSuggestions bundles both cart recommendation flavors.
type CartSuggestions struct {
	CrossSell []CrossSellItem `json:"cross_sell"`
	UpSell    []UpSellItem    `json:"up_sell"`
}
