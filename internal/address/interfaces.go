package address

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
)

// Repository defines persistence operations for the address book.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error)
	ListAddresses(ctx context.Context, ownerKey string) ([]models.Address, error)
	FindAddress(ctx context.Context, id uuid.UUID) (*models.Address, error)
	DeleteAddress(ctx context.Context, ownerKey string, id uuid.UUID) error
}
