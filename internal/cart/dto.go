package cart

import "github.com/google/uuid"

// LineView is one cart line enriched with its live product data.
type LineView struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int       `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	SubtotalCents  int       `json:"subtotal_cents"`
}

// View is the full cart for one owner.
type View struct {
	Lines         []LineView `json:"lines"`
	ItemCount     int        `json:"item_count"`
	SubtotalCents int        `json:"subtotal_cents"`
}

// AddItemInput is the payload to add a product to the cart.
type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

// UpdateItemInput is the payload to set a line's quantity.
type UpdateItemInput struct {
	Quantity int `json:"quantity"`
}
