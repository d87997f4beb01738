package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/identikit/pkg/jwt"
	"github.com/dmitrymomot/identikit/pkg/logger"
)

type claimsContextKey struct{}

// WithClaims stores verified access claims in ctx.
func WithClaims(ctx context.Context, c *AccessClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, c)
}

// ClaimsFromContext returns the access claims attached by Middleware.
func ClaimsFromContext(ctx context.Context) (*AccessClaims, bool) {
	c, ok := ctx.Value(claimsContextKey{}).(*AccessClaims)
	return c, ok && c != nil
}

// Middleware attaches the claims of a valid access token to the request
// context. Requests without a valid token pass through unauthenticated;
// handlers that need a caller check ClaimsFromContext.
func Middleware(tokens *TokenService, extract jwt.TokenExtractorFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if extract == nil {
		extract = jwt.BearerTokenExtractor
	}
	if log == nil {
		log = logger.Discard()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := extract(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := tokens.ParseAccess(raw)
			if err != nil {
				log.DebugContext(r.Context(), "ignoring invalid access token", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
