// Package paging implements keyset (cursor) pagination.
//
// A page is fetched by bounding a query on a unique, totally ordered key
// column and over-fetching one row to detect whether more data exists in the
// direction of travel. Cursors are opaque base64url tokens that carry only the
// boundary key, so they stay valid across inserts and deletes.
//
// Typical use with squirrel:
//
//	key, err := req.UUIDKey()
//	q := paging.Bound(sq.Select("id", "name").From("tenants"), "id", key, req.PageSize, req.Direction)
//	rows := ... // run q
//	page := paging.Finalize(rows, func(t Tenant) string { return t.ID.String() }, req)
//
// Items are always returned in ascending key order, regardless of direction.
package paging
