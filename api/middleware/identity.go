package middleware

import (
	"net/http"
	"strings"

	"github.com/storekit/storefront-backend/api/responses"
	pkgauth "github.com/storekit/storefront-backend/pkg/auth"
	"github.com/storekit/storefront-backend/pkg/auth/session"
	"github.com/storekit/storefront-backend/pkg/config"
	pkgerrors "github.com/storekit/storefront-backend/pkg/errors"
	"github.com/storekit/storefront-backend/pkg/logger"
)

const shopperTokenHeader = "X-Shopper-Token"

// Identity resolves the request's owner key from either a bearer JWT or an
// anonymous shopper token, and seeds the context with owner key and role.
// Requests carrying neither credential are rejected.
func Identity(cfg config.JWTConfig, sessions session.Validator, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw != "" {
				token := raw
				if strings.HasPrefix(strings.ToLower(token), "bearer ") {
					token = strings.TrimSpace(token[7:])
				}
				if token == "" {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
					return
				}

				claims, err := pkgauth.ParseAccessToken(cfg, token)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
					return
				}

				ownerKey := "user:" + claims.UserID.String()
				ctx := WithOwnerKey(r.Context(), ownerKey)
				ctx = WithRole(ctx, string(claims.Role))
				ctx = WithUserID(ctx, claims.UserID.String())

				if logg != nil {
					ctx = logg.WithOwnerKey(ctx, ownerKey)
					ctx = logg.WithActorRole(ctx, string(claims.Role))
				}

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			shopperToken := strings.TrimSpace(r.Header.Get(shopperTokenHeader))
			if shopperToken == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			if sessions == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "session store unavailable"))
				return
			}

			ok, err := sessions.Validate(r.Context(), shopperToken)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
				return
			}
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired"))
				return
			}

			ownerKey := "anon:" + shopperToken
			ctx := WithOwnerKey(r.Context(), ownerKey)
			ctx = WithRole(ctx, string(pkgauth.RoleShopper))

			if logg != nil {
				ctx = logg.WithOwnerKey(ctx, ownerKey)
				ctx = logg.WithActorRole(ctx, string(pkgauth.RoleShopper))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
