package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ecocraftid/ecocraft-backend/api/responses"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
)

const clientIDHeader = "X-Client-Id"

type clientIDKey struct{}

// ClientContext requires the client identity header on every request in the
// group. The id scopes all persisted state (cart, favorites, checkout,
// profile); there is no account system behind it.
func ClientContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := strings.TrimSpace(r.Header.Get(clientIDHeader))
			if clientID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Client-Id header is required"))
				return
			}

			ctx := context.WithValue(r.Context(), clientIDKey{}, clientID)
			if logg != nil {
				ctx = logg.WithClientID(ctx, clientID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIDFromContext returns the client id set by ClientContext, or "".
func ClientIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(clientIDKey{}).(string); ok {
		return v
	}
	return ""
}
