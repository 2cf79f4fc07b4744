package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace-backend/internal/attachment"
)

// Product entity. Rating and NumReviews are derived from the review list
// and recomputed on every review append; never written independently.
type Product struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       decimal.Decimal       `json:"price"`
	Stock       int                   `json:"stock"`
	CategoryID  *uuid.UUID            `json:"-"`
	Category    *CategoryInfo         `json:"category,omitempty"`
	Images      []attachment.ImageRef `json:"images"`
	Reviews     []Review              `json:"reviews,omitempty"`
	Rating      float64               `json:"rating"`
	NumReviews  int                   `json:"numReviews"`
	IsApproved  bool                  `json:"isApproved"`
	Boosted     int                   `json:"boosted"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// CategoryInfo is the joined category snapshot embedded in product reads
type CategoryInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Review is owned by exactly one product; immutable once created
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"-"`
	UserID    uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"` // 0-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// RecomputeRating derives the aggregate from the full review list.
// Plain arithmetic mean, no weighting. Empty list yields 0/0.
func RecomputeRating(reviews []Review) (rating float64, numReviews int) {
	n := len(reviews)
	if n == 0 {
		return 0, 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(n), n
}
