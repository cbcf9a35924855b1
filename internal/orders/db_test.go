package orders

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
	"github.com/storekit/storefront-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Order{}, &models.OrderLine{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func mustCreateTestOrder(t *testing.T, tx *gorm.DB, ownerKey string, mutate func(*models.Order)) *models.Order {
	t.Helper()
	order := &models.Order{
		OwnerKey:      ownerKey,
		OrderNumber:   fmt.Sprintf("ORD-20250901-%s", uuid.NewString()[:6]),
		Status:        enums.OrderStatusPending,
		SubtotalCents: 2000,
		ShippingCents: 999,
		TaxCents:      165,
		TotalCents:    3164,
		CreatedAt:     time.Now().UTC(),
	}
	if mutate != nil {
		mutate(order)
	}
	if err := tx.Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}
