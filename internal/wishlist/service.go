package wishlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storekit/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storekit/storefront-backend/pkg/errors"
)

// Service exposes saved-for-later products per owner. The owner key comes
// from the identity middleware, never from the caller payload.
type Service interface {
	List(ctx context.Context, ownerKey string) (*View, error)
	Add(ctx context.Context, ownerKey string, productID uuid.UUID) (*View, error)
	Remove(ctx context.Context, ownerKey string, productID uuid.UUID) (*View, error)
}

type service struct {
	repo     Repository
	products productReader
}

// NewService constructs a wishlist service instance.
func NewService(repo Repository, products productReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{repo: repo, products: products}, nil
}

// List returns the owner's saved products. Entries whose product has gone
// inactive are hidden, matching the public catalog.
func (s *service) List(ctx context.Context, ownerKey string) (*View, error) {
	if err := validateOwnerKey(ownerKey); err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, ownerKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist items")
	}
	return buildView(items), nil
}

// Add saves a product for later. Saving an already saved product is a no-op.
func (s *service) Add(ctx context.Context, ownerKey string, productID uuid.UUID) (*View, error) {
	if err := validateOwnerKey(ownerKey); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.products.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	if err := s.repo.AddItem(ctx, &models.WishlistItem{
		OwnerKey:  ownerKey,
		ProductID: productID,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wishlist item")
	}
	return s.List(ctx, ownerKey)
}

// Remove drops the entry. A missing entry is a no-op.
func (s *service) Remove(ctx context.Context, ownerKey string, productID uuid.UUID) (*View, error) {
	if err := validateOwnerKey(ownerKey); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.RemoveItem(ctx, ownerKey, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	return s.List(ctx, ownerKey)
}

func validateOwnerKey(ownerKey string) error {
	if strings.TrimSpace(ownerKey) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "wishlist owner missing")
	}
	return nil
}

func buildView(items []models.WishlistItem) *View {
	view := &View{Items: make([]ItemView, 0, len(items))}
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		view.Items = append(view.Items, ItemView{
			ProductID:  item.ProductID,
			Name:       item.Product.Name,
			PriceCents: item.Product.PriceCents,
			InStock:    item.Product.Stock > 0,
			AddedAt:    item.CreatedAt,
		})
	}
	view.Count = len(view.Items)
	return view
}
