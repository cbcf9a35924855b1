package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/storekit/storefront-backend/api/responses"
	pkgerrors "github.com/storekit/storefront-backend/pkg/errors"
	"github.com/storekit/storefront-backend/pkg/logger"
)

type sessionMinter interface {
	Mint(ctx context.Context) (string, error)
	Revoke(ctx context.Context, token string) error
}

type sessionResponse struct {
	ShopperToken string `json:"shopper_token"`
}

// SessionCreate mints a new anonymous shopper token. The client presents it
// as X-Shopper-Token on subsequent cart and checkout requests.
func SessionCreate(manager sessionMinter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		token, err := manager.Mint(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mint session"))
			return
		}

		w.Header().Set("X-Shopper-Token", token)
		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{ShopperToken: token})
	}
}

// SessionRevoke discards the presented shopper token.
func SessionRevoke(manager sessionMinter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		token := strings.TrimSpace(r.Header.Get("X-Shopper-Token"))
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "shopper token required"))
			return
		}

		if err := manager.Revoke(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "revoked"})
	}
}
