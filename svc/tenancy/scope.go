package tenancy

import (
	"context"

	"github.com/dmitrymomot/identikit/svc/tenant"
	"github.com/dmitrymomot/identikit/svc/user"
)

// Scope is the set of repositories bound to one schema for the lifetime of a
// request. Tenants always address the shared tenant directory; Users and
// RefreshTokens address the scope's schema.
type Scope interface {
	Schema() string
	Tenants() tenant.Repository
	Users() user.Repository
	RefreshTokens() user.RefreshTokenStore
	// Close releases the underlying connection. It is safe to call twice.
	Close(ctx context.Context)
}

// Opener opens scopes. Implementations validate the schema name.
type Opener interface {
	Open(ctx context.Context, schema string) (Scope, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, schema string) (Scope, error)

func (f OpenerFunc) Open(ctx context.Context, schema string) (Scope, error) { return f(ctx, schema) }
