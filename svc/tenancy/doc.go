// Package tenancy routes each HTTP request to the database schema of the
// tenant named in its X-Tenant-ID header.
//
// Resolve validates the identifier and loads the tenant from the shared
// directory, treating unknown and inactive tenants alike. SchemaName derives
// the tenant's schema from its ID. Middleware ties both together with an
// Opener: it opens a Scope (repositories bound to one schema) per request,
// stores it in the context, and always closes it.
//
//	r.Use(tenancy.Middleware(opener, tenancy.WithLogger(log)))
//	...
//	scope, _ := tenancy.ScopeFromContext(r.Context())
//	users := scope.Users()
package tenancy
