// Package pgstore implements the tenant and user repositories on Postgres.
//
// Tenants live in public.tenants and are reachable from any session. Users
// are queried unqualified, so they land in the schema the session's
// search_path points at. Creating a tenant provisions its schema in the same
// transaction; deleting it drops the schema.
package pgstore
