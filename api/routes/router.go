package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storekit/storefront-backend/api/controllers"
	"github.com/storekit/storefront-backend/api/middleware"
	"github.com/storekit/storefront-backend/internal/address"
	"github.com/storekit/storefront-backend/internal/cart"
	"github.com/storekit/storefront-backend/internal/catalog"
	checkoutsvc "github.com/storekit/storefront-backend/internal/checkout"
	"github.com/storekit/storefront-backend/internal/orders"
	"github.com/storekit/storefront-backend/internal/wishlist"
	pkgauth "github.com/storekit/storefront-backend/pkg/auth"
	"github.com/storekit/storefront-backend/pkg/auth/session"
	"github.com/storekit/storefront-backend/pkg/config"
	"github.com/storekit/storefront-backend/pkg/db"
	"github.com/storekit/storefront-backend/pkg/logger"
	"github.com/storekit/storefront-backend/pkg/metrics"
	"github.com/storekit/storefront-backend/pkg/redis"
)

type sessionManager interface {
	session.Validator
	Mint(ctx context.Context) (string, error)
	Revoke(ctx context.Context, token string) error
}

// Deps carries everything the router wires into controllers and middleware.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          redis.Pinger
	Idempotency    redis.IdempotencyStore
	Sessions       sessionManager
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Catalog  catalog.Service
	Cart     cart.Service
	Orders   orders.Service
	Address  address.Service
	Checkout checkoutsvc.Service
	Wishlist wishlist.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/session", controllers.SessionCreate(deps.Sessions, logg))
		r.Delete("/session", controllers.SessionRevoke(deps.Sessions, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.ProductList(deps.Catalog, logg))
			r.Get("/products/{productId}", controllers.ProductDetail(deps.Catalog, logg))
			r.Get("/categories", controllers.CategoryList(deps.Catalog, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(deps.Idempotency, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(deps.Orders, logg))
				r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, logg))
				r.Post("/{orderId}/cancel", controllers.OrderCancel(deps.Orders, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistFetch(deps.Wishlist, logg))
				r.Post("/items", controllers.WishlistAddItem(deps.Wishlist, logg))
				r.Delete("/items/{productId}", controllers.WishlistRemoveItem(deps.Wishlist, logg))
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", controllers.AddressList(deps.Address, logg))
				r.Post("/", controllers.AddressCreate(deps.Address, logg))
				r.Get("/{addressId}", controllers.AddressDetail(deps.Address, logg))
				r.Delete("/{addressId}", controllers.AddressDelete(deps.Address, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Identity(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(string(pkgauth.RoleAdmin), logg))
		r.Use(middleware.Idempotency(deps.Idempotency, logg))

		r.Post("/products", controllers.AdminCreateProduct(deps.Catalog, logg))
		r.Patch("/products/{productId}", controllers.AdminUpdateProduct(deps.Catalog, logg))
		r.Post("/categories", controllers.AdminCreateCategory(deps.Catalog, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(deps.Orders, logg))
			r.Post("/{orderId}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
		})
	})

	return r
}
