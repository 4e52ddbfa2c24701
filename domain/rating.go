package domain

import (
	"time"
)

// RatingEvent is one user's rating of one product. Rows are append-only: the
// recommendation engine only ever reads aggregates over them.
type RatingEvent struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID string    `gorm:"column:product_id;index;not null" json:"product_id"`
	UserID    string    `gorm:"column:user_id;index;not null" json:"user_id"`
	Rating    float64   `gorm:"column:rating;not null" json:"rating"`
	RatedAt   time.Time `gorm:"column:rated_at;autoCreateTime" json:"rated_at"`
}

func (RatingEvent) TableName() string {
	return "rating_events"
}

// CoRatedProduct aggregates the ratings a group of users gave one product.
type CoRatedProduct struct {
	ProductID string  `json:"product_id"`
	UserCount int64   `json:"user_count"`
	AvgRating float64 `json:"avg_rating"`
}

// TrendingProduct aggregates recent rating activity for one product.
type TrendingProduct struct {
	ProductID   string  `json:"product_id"`
	ReviewCount int64   `json:"review_count"`
	AvgRating   float64 `json:"avg_rating"`
}
