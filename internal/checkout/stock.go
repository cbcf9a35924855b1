package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storekit/storefront-backend/pkg/errors"
)

// DecrementStock atomically takes qty units from the product's stock inside
// the caller's transaction. The guarded UPDATE never lets stock go negative:
// when the remaining stock is short the update matches no rows and the
// checkout fails with INSUFFICIENT_STOCK carrying the quantity still
// available.
func DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	if qty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	result := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "decrement stock")
	}
	if result.RowsAffected == 0 {
		available := 0
		var product models.Product
		if err := tx.WithContext(ctx).Select("stock").Where("id = ?", productID).First(&product).Error; err == nil {
			available = product.Stock
		}
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
			WithDetails(map[string]any{
				"product_id": productID,
				"requested":  qty,
				"available":  available,
			})
	}
	return nil
}
