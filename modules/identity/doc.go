// Package identity is the HTTP API of the service: tenant management, user
// management, login and token refresh.
//
// Routes:
//
//	POST   /tenants                 create a tenant (201, 409 on a taken domain)
//	GET    /tenants                 list tenants (cursor, page_size, direction)
//	GET    /tenants/{tenant_id}     fetch a tenant
//	PUT    /tenants/{tenant_id}     partial update (PATCH is accepted too)
//	DELETE /tenants/{tenant_id}     delete the tenant and its schema (204)
//	POST   /users                   register a user in the routed schema
//	GET    /users                   list users of the routed schema
//	GET    /users/me                the caller of a bearer access token
//	GET    /users/{user_id}         fetch a user
//	PUT    /users/{user_id}         partial profile update (PATCH is accepted too)
//	DELETE /users/{user_id}         delete a user and revoke their refresh tokens
//	POST   /users/login             exchange email and password for a token pair
//	POST   /users/refresh           rotate a refresh token
//
// Requests carrying X-Tenant-ID run against that tenant's schema; the rest
// run against the shared one.
package identity
