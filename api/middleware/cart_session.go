package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fixnest/fixnest-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

// CartSession resolves the opaque session token that keys the visitor's cart
// and wizard draft. First-time visitors get a fresh token; the header is
// always echoed back so the storefront can persist it.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(cartSessionHeader))
			if token == "" || uuid.Validate(token) != nil {
				token = uuid.NewString()
			}

			w.Header().Set(cartSessionHeader, token)

			ctx := WithCartSession(r.Context(), token)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
