package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
)

// Repository defines persistence operations for cart lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListLines(ctx context.Context, ownerKey string) ([]models.CartLine, error)
	FindLine(ctx context.Context, ownerKey string, productID uuid.UUID) (*models.CartLine, error)
	CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	UpdateLineQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error
	DeleteLine(ctx context.Context, ownerKey string, productID uuid.UUID) error
	DeleteAllLines(ctx context.Context, ownerKey string) error
}

type productReader interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}
