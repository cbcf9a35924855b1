package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
	"github.com/storekit/storefront-backend/pkg/enums"
	"github.com/storekit/storefront-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderLines(ctx context.Context, lines []models.OrderLine) error
	FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindOwnerOrder(ctx context.Context, ownerKey string, id uuid.UUID) (*models.Order, error)
	ListOwnerOrders(ctx context.Context, ownerKey string, params pagination.Params) (*OrderList, error)
	ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus, updates map[string]any) error
}
