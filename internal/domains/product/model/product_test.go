package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeRating_Empty(t *testing.T) {
	rating, n := RecomputeRating(nil)

	assert.Equal(t, 0.0, rating)
	assert.Equal(t, 0, n)
}

func TestRecomputeRating_Mean(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"single", []int{4}, 4},
		{"uniform", []int{5, 5, 5}, 5},
		{"mixed", []int{5, 1, 3}, 3},
		{"fractional", []int{4, 5}, 4.5},
		{"with zero", []int{0, 5}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := make([]Review, 0, len(tt.ratings))
			for _, r := range tt.ratings {
				reviews = append(reviews, Review{Rating: r})
			}

			rating, n := RecomputeRating(reviews)

			assert.InDelta(t, tt.want, rating, 1e-9)
			assert.Equal(t, len(tt.ratings), n)
		})
	}
}

func TestCreateProductRequest_Validate(t *testing.T) {
	stock := 3
	valid := CreateProductRequest{
		Name:        "Camera",
		Description: "A camera",
		Price:       "129.99",
		Stock:       &stock,
	}
	assert.NoError(t, valid.Validate())

	missing := CreateProductRequest{Name: "Camera"}
	assert.Error(t, missing.Validate())

	badPrice := valid
	badPrice.Price = "cheap"
	assert.Error(t, badPrice.Validate())

	negStock := -1
	badStock := valid
	badStock.Stock = &negStock
	assert.Error(t, badStock.Validate())
}

func TestReviewRequest_Validate(t *testing.T) {
	for _, rating := range []int{0, 3, 5} {
		r := rating
		assert.NoError(t, ReviewRequest{Rating: &r}.Validate(), "rating %d", rating)
	}

	for _, rating := range []int{-1, 6} {
		r := rating
		assert.Error(t, ReviewRequest{Rating: &r}.Validate(), "rating %d", rating)
	}

	assert.Error(t, ReviewRequest{Comment: "no rating"}.Validate())
}
