// Package tenant holds the Tenant entity, its Repository contract and the
// Service implementing create, update, deactivate, delete and cursor listing.
//
// Tenant IDs are UUIDv7, so ID order is creation order and cursor pages walk
// tenants oldest first.
package tenant
