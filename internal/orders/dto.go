package orders

import (
	"github.com/storekit/storefront-backend/pkg/db/models"
	"github.com/storekit/storefront-backend/pkg/enums"
)

// OrderList is one page of orders plus the cursor for the next page.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrderFilters narrows the admin order listing.
type OrderFilters struct {
	Status   *enums.OrderStatus `json:"status,omitempty"`
	OwnerKey string             `json:"owner_key,omitempty"`
}

// UpdateStatusInput is the admin payload to move an order forward.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}
