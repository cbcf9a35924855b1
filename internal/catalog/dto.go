package catalog

import (
	"github.com/google/uuid"

	"github.com/storekit/storefront-backend/pkg/db/models"
)

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	CategorySlug    string     `json:"category,omitempty"`
	PriceMinCents   *int       `json:"price_min_cents,omitempty"`
	PriceMaxCents   *int       `json:"price_max_cents,omitempty"`
	Query           string     `json:"q,omitempty"`
	IncludeInactive bool       `json:"-"`
}

// ProductList is one page of catalog products plus the cursor for the next page.
type ProductList struct {
	Products   []models.Product `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// CreateProductInput carries the fields an admin supplies for a new listing.
type CreateProductInput struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	SKU         string    `json:"sku" validate:"required,max=64"`
	Name        string    `json:"name" validate:"required,max=255"`
	Description *string   `json:"description,omitempty"`
	PriceCents  int       `json:"price_cents" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

// UpdateProductInput carries optional fields for a partial product update.
type UpdateProductInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int    `json:"price_cents,omitempty" validate:"omitempty,gte=0"`
	Stock       *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// CreateCategoryInput carries the fields for a new category.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
	Slug string `json:"slug" validate:"required,max=64"`
}
