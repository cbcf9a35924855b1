package checkout

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storekit/storefront-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.CartLine{},
		&models.Address{},
		&models.Order{},
		&models.OrderLine{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, mutate func(*models.Product)) *models.Product {
	t.Helper()
	category := &models.Category{Name: "Test", Slug: "test-" + uuid.NewString()}
	if err := tx.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	product := &models.Product{
		CategoryID: category.ID,
		SKU:        fmt.Sprintf("SKU-%s", uuid.NewString()),
		Name:       "Test Product",
		PriceCents: 10000,
		Stock:      5,
		IsActive:   true,
	}
	if mutate != nil {
		mutate(product)
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustAddCartLine(t *testing.T, tx *gorm.DB, ownerKey string, productID uuid.UUID, qty int) {
	t.Helper()
	line := &models.CartLine{
		OwnerKey:  ownerKey,
		ProductID: productID,
		Quantity:  qty,
	}
	if err := tx.Create(line).Error; err != nil {
		t.Fatalf("create cart line: %v", err)
	}
}

func codeOf(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected coded error, got %v", err)
	return typed.Code()
}
