package model

import (
	"time"

	"github.com/google/uuid"

	"marketplace-backend/internal/attachment"
)

// Post is a user-authored social post with an ordered image list
type Post struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	PostedBy    uuid.UUID             `json:"postedBy"`
	Poster      *PosterInfo           `json:"poster,omitempty"`
	Images      []attachment.ImageRef `json:"images"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// PosterInfo is the author projection embedded on reads
type PosterInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
