package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db"
	"github.com/storekit/storefront-backend/pkg/db/models"
	"github.com/storekit/storefront-backend/pkg/pagination"
)

func TestListProductsSkipsInactiveByDefault(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	category := mustCreateTestCategory(t, conn)

	mustCreateTestProduct(t, conn, category.ID, func(p *models.Product) { p.Name = "Visible" })
	mustCreateTestProduct(t, conn, category.ID, func(p *models.Product) {
		p.Name = "Hidden"
		p.IsActive = false
	})

	list, err := repo.ListProducts(context.Background(), pagination.Params{}, ProductListFilters{})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Visible", list.Products[0].Name)
	assert.Empty(t, list.NextCursor)
}

func TestListProductsIncludeInactive(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	category := mustCreateTestCategory(t, conn)

	mustCreateTestProduct(t, conn, category.ID, nil)
	mustCreateTestProduct(t, conn, category.ID, func(p *models.Product) { p.IsActive = false })

	list, err := repo.ListProducts(context.Background(), pagination.Params{}, ProductListFilters{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, list.Products, 2)
}

func TestListProductsFiltersByCategorySlug(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	wanted := mustCreateTestCategory(t, conn)
	other := mustCreateTestCategory(t, conn)

	mustCreateTestProduct(t, conn, wanted.ID, func(p *models.Product) { p.Name = "Wanted" })
	mustCreateTestProduct(t, conn, other.ID, func(p *models.Product) { p.Name = "Other" })

	list, err := repo.ListProducts(context.Background(), pagination.Params{}, ProductListFilters{CategorySlug: wanted.Slug})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Wanted", list.Products[0].Name)
}

func TestListProductsSearchMatchesNameAndSKU(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	category := mustCreateTestCategory(t, conn)

	mustCreateTestProduct(t, conn, category.ID, func(p *models.Product) { p.Name = "Espresso Machine" })
	mustCreateTestProduct(t, conn, category.ID, func(p *models.Product) { p.Name = "Kettle" })

	list, err := repo.ListProducts(context.Background(), pagination.Params{}, ProductListFilters{Query: "espresso"})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Espresso Machine", list.Products[0].Name)
}

func TestListProductsPaginatesNewestFirst(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	category := mustCreateTestCategory(t, conn)

	base := time.Now().UTC().Add(-time.Hour)
	names := []string{"first", "second", "third"}
	for i, name := range names {
		created := base.Add(time.Duration(i) * time.Minute)
		mustCreateTestProduct(t, conn, category.ID, func(p *models.Product) {
			p.Name = name
			p.CreatedAt = created
		})
	}

	page1, err := repo.ListProducts(context.Background(), pagination.Params{Limit: 2}, ProductListFilters{})
	require.NoError(t, err)
	require.Len(t, page1.Products, 2)
	assert.Equal(t, "third", page1.Products[0].Name)
	assert.Equal(t, "second", page1.Products[1].Name)
	require.NotEmpty(t, page1.NextCursor)

	page2, err := repo.ListProducts(context.Background(), pagination.Params{Limit: 2, Cursor: page1.NextCursor}, ProductListFilters{})
	require.NoError(t, err)
	require.Len(t, page2.Products, 1)
	assert.Equal(t, "first", page2.Products[0].Name)
	assert.Empty(t, page2.NextCursor)
}

func TestFindProductPreloadsCategory(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	category := mustCreateTestCategory(t, conn)
	seeded := mustCreateTestProduct(t, conn, category.ID, nil)

	found, err := repo.FindProduct(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Category)
	assert.Equal(t, category.Slug, found.Category.Slug)
}

func TestFindProductMissingReturnsRecordNotFound(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)

	_, err := repo.FindProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateProductDuplicateSKUIsUniqueViolation(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	category := mustCreateTestCategory(t, conn)
	seeded := mustCreateTestProduct(t, conn, category.ID, nil)

	_, err := repo.CreateProduct(context.Background(), &models.Product{
		CategoryID: category.ID,
		SKU:        seeded.SKU,
		Name:       "Duplicate",
		PriceCents: 500,
	})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
}

func TestCreateProductPersistsInactiveFlag(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	category := mustCreateTestCategory(t, conn)

	created, err := repo.CreateProduct(context.Background(), &models.Product{
		CategoryID: category.ID,
		SKU:        "SKU-DRAFT",
		Name:       "Draft",
		PriceCents: 900,
		Stock:      3,
		IsActive:   false,
	})
	require.NoError(t, err)
	assert.False(t, created.IsActive)

	found, err := repo.FindProduct(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestUpdateProductAppliesPartialUpdates(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	category := mustCreateTestCategory(t, conn)
	seeded := mustCreateTestProduct(t, conn, category.ID, nil)

	err := repo.UpdateProduct(context.Background(), seeded.ID, map[string]any{
		"price_cents": 2500,
		"is_active":   false,
	})
	require.NoError(t, err)

	found, err := repo.FindProduct(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 2500, found.PriceCents)
	assert.False(t, found.IsActive)
	assert.Equal(t, seeded.Name, found.Name)
}

func TestListCategoriesOrdersByName(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)

	for _, name := range []string{"Zeta", "Alpha"} {
		require.NoError(t, conn.Create(&models.Category{Name: name, Slug: "slug-" + uuid.NewString()}).Error)
	}

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Alpha", categories[0].Name)
	assert.Equal(t, "Zeta", categories[1].Name)
}
