package wishlist

import (
	"time"

	"github.com/google/uuid"
)

// ItemView is one saved product with its live catalog data.
type ItemView struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	PriceCents int       `json:"price_cents"`
	InStock    bool      `json:"in_stock"`
	AddedAt    time.Time `json:"added_at"`
}

// View is the full wishlist for one owner, newest first.
type View struct {
	Items []ItemView `json:"items"`
	Count int        `json:"count"`
}

// AddItemInput is the payload to save a product for later.
type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}
