// Package memstore keeps tenants, per-schema users and refresh tokens in
// memory. It implements the same repository contracts and pagination
// semantics as the Postgres and Redis stores and serves as their stand-in in
// tests and local development.
package memstore
