package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
)

// Repository defines persistence operations for wishlist entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListItems(ctx context.Context, ownerKey string) ([]models.WishlistItem, error)
	AddItem(ctx context.Context, item *models.WishlistItem) error
	RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID) error
}

type productReader interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}
