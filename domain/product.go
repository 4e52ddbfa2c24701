package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id      TEXT UNIQUE NOT NULL,
//     product_type    TEXT,
//     product_title   TEXT,
//     price           NUMERIC,
//     image_url       TEXT,
//     url             TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ProductID    string    `gorm:"column:product_id;uniqueIndex;not null" json:"product_id"`
	ProductType  string    `gorm:"column:product_type;type:text" json:"product_type"`
	ProductTitle string    `gorm:"column:product_title;type:text" json:"product_title"`
	Price        float64   `gorm:"column:price;type:numeric" json:"price"`
	ImageURL     string    `gorm:"column:image_url;type:text" json:"image_url"`
	URL          string    `gorm:"column:url;type:text" json:"url"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ProductStats is a product joined with its rating aggregates. It is a query
// result, not a table.
type ProductStats struct {
	ProductID    string  `json:"product_id"`
	ProductType  string  `json:"product_type"`
	ProductTitle string  `json:"product_title"`
	ImageURL     string  `json:"image_url"`
	Price        float64 `json:"price"`
	AvgRating    float64 `json:"avg_rating"`
	ReviewCount  int64   `json:"review_count"`
}

// ProductTypeCount is one row of the catalog's category listing.
type ProductTypeCount struct {
	ProductType string  `json:"product_type"`
	Count       int64   `json:"count"`
	AvgRating   float64 `json:"avg_rating"`
}
