package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	addresssvc "github.com/storekit/storefront-backend/internal/address"
	cartsvc "github.com/storekit/storefront-backend/internal/cart"
	catalogsvc "github.com/storekit/storefront-backend/internal/catalog"
	checkoutsvc "github.com/storekit/storefront-backend/internal/checkout"
	ordersvc "github.com/storekit/storefront-backend/internal/orders"
	wishlistsvc "github.com/storekit/storefront-backend/internal/wishlist"
	pkgauth "github.com/storekit/storefront-backend/pkg/auth"
	"github.com/storekit/storefront-backend/pkg/config"
	"github.com/storekit/storefront-backend/pkg/db/models"
	"github.com/storekit/storefront-backend/pkg/enums"
	"github.com/storekit/storefront-backend/pkg/logger"
	"github.com/storekit/storefront-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type memoryIdempotencyStore struct {
	data map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{data: map[string]string{}}
}

func (m *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	return m.data[key], nil
}

func (m *memoryIdempotencyStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	str, _ := value.(string)
	m.data[key] = str
	return nil
}

func (m *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	m.data[key] = str
	return true, nil
}

func (m *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "test:idem:" + scope + ":" + id
}

func (m *memoryIdempotencyStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) Validate(context.Context, string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Mint(context.Context) (string, error) {
	return "tok-test", nil
}

func (stubSessionManager) Revoke(context.Context, string) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListProducts(context.Context, pagination.Params, catalogsvc.ProductListFilters) (*catalogsvc.ProductList, error) {
	return &catalogsvc.ProductList{}, nil
}

func (stubCatalogService) GetProduct(context.Context, uuid.UUID) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubCatalogService) ListCategories(context.Context) ([]models.Category, error) {
	return nil, nil
}

func (stubCatalogService) CreateProduct(context.Context, catalogsvc.CreateProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubCatalogService) UpdateProduct(context.Context, uuid.UUID, catalogsvc.UpdateProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubCatalogService) CreateCategory(context.Context, catalogsvc.CreateCategoryInput) (*models.Category, error) {
	return &models.Category{}, nil
}

type stubCartService struct{}

func (stubCartService) GetCart(context.Context, string) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) AddItem(context.Context, string, cartsvc.AddItemInput) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) UpdateQuantity(context.Context, string, uuid.UUID, int) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) RemoveItem(context.Context, string, uuid.UUID) (*cartsvc.View, error) {
	return &cartsvc.View{}, nil
}

func (stubCartService) Clear(context.Context, string) error {
	return nil
}

type stubOrdersService struct{}

func (stubOrdersService) ListOrders(context.Context, string, pagination.Params) (*ordersvc.OrderList, error) {
	return &ordersvc.OrderList{}, nil
}

func (stubOrdersService) GetOrder(context.Context, string, uuid.UUID) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) CancelOrder(context.Context, string, uuid.UUID) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) ListAllOrders(context.Context, pagination.Params, ordersvc.OrderFilters) (*ordersvc.OrderList, error) {
	return &ordersvc.OrderList{}, nil
}

func (stubOrdersService) AdvanceStatus(context.Context, uuid.UUID, enums.OrderStatus) (*models.Order, error) {
	return &models.Order{}, nil
}

type stubAddressService struct{}

func (stubAddressService) Create(context.Context, string, addresssvc.CreateInput) (*models.Address, error) {
	return &models.Address{}, nil
}

func (stubAddressService) List(context.Context, string) ([]models.Address, error) {
	return nil, nil
}

func (stubAddressService) Get(context.Context, string, uuid.UUID) (*models.Address, error) {
	return &models.Address{}, nil
}

func (stubAddressService) Delete(context.Context, string, uuid.UUID) error {
	return nil
}

type stubWishlistService struct{}

func (stubWishlistService) List(context.Context, string) (*wishlistsvc.View, error) {
	return &wishlistsvc.View{}, nil
}

func (stubWishlistService) Add(context.Context, string, uuid.UUID) (*wishlistsvc.View, error) {
	return &wishlistsvc.View{}, nil
}

func (stubWishlistService) Remove(context.Context, string, uuid.UUID) (*wishlistsvc.View, error) {
	return &wishlistsvc.View{}, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Execute(context.Context, string, checkoutsvc.Input) (*models.Order, error) {
	return &models.Order{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func buildToken(t *testing.T, cfg *config.Config, role pkgauth.Role) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          stubPinger{},
		Redis:       stubPinger{},
		Idempotency: newMemoryIdempotencyStore(),
		Sessions:    stubSessionManager{},
		Catalog:     stubCatalogService{},
		Cart:        stubCartService{},
		Orders:      stubOrdersService{},
		Address:     stubAddressService{},
		Checkout:    stubCheckoutService{},
		Wishlist:    stubWishlistService{},
	})
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCatalogIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public catalog got %d", resp.Code)
	}
}

func TestSessionMintIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for session mint got %d", resp.Code)
	}
}

func TestCartRejectsMissingCredentials(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials got %d", resp.Code)
	}
}

func TestCartAcceptsShopperToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Shopper-Token", "tok-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with shopper token got %d", resp.Code)
	}
}

func TestOrdersAcceptJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, pkgauth.RoleShopper))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with JWT got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, pkgauth.RoleShopper))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, pkgauth.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestShopperTokenCannotReachAdmin(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	req.Header.Set("X-Shopper-Token", "tok-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for shopper token got %d", resp.Code)
	}
}

func TestOrderCancelGuardedByIdempotencyKey(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/api/v1/orders/" + uuid.NewString() + "/cancel"
	token := buildToken(t, cfg, pkgauth.RoleShopper)

	bare := httptest.NewRequest(http.MethodPost, target, nil)
	bare.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, bare)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Idempotency-Key") {
		t.Fatalf("expected missing-key message, got %s", resp.Body.String())
	}

	keyed := httptest.NewRequest(http.MethodPost, target, nil)
	keyed.Header.Set("Authorization", "Bearer "+token)
	keyed.Header.Set("Idempotency-Key", "cancel-1")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, keyed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with idempotency key got %d", resp.Code)
	}
}

func TestAdminWritesGuardedByIdempotencyKey(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, pkgauth.RoleAdmin)

	targets := []string{
		"/api/admin/v1/products",
		"/api/admin/v1/categories",
		"/api/admin/v1/orders/" + uuid.NewString() + "/status",
	}
	for _, target := range targets {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 without idempotency key got %d", target, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), "Idempotency-Key") {
			t.Fatalf("%s: expected missing-key message, got %s", target, resp.Body.String())
		}
	}
}

func TestCheckoutGuardedByIdempotencyKey(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{}`))
	req.Header.Set("X-Shopper-Token", "tok-test")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Idempotency-Key") {
		t.Fatalf("expected missing-key message, got %s", resp.Body.String())
	}
}

func TestWishlistRequiresCredentials(t *testing.T) {
	router := newTestRouter(testConfig())

	bare := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, bare)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials got %d", resp.Code)
	}

	keyed := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil)
	keyed.Header.Set("X-Shopper-Token", "tok-test")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, keyed)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with shopper token got %d", resp.Code)
	}
}
