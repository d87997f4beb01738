package paging

import (
	"slices"

	sq "github.com/Masterminds/squirrel"
)

// Bound restricts q to the window after (Forward) or before (Backward) key,
// ordered by keyColumn in the direction of travel, limited to pageSize+1 rows.
// A nil key applies only the ordering and limit.
func Bound(q sq.SelectBuilder, keyColumn string, key *string, pageSize int, dir Direction) sq.SelectBuilder {
	if dir == Backward {
		if key != nil {
			q = q.Where(sq.Lt{keyColumn: *key})
		}
		q = q.OrderBy(keyColumn + " DESC")
	} else {
		if key != nil {
			q = q.Where(sq.Gt{keyColumn: *key})
		}
		q = q.OrderBy(keyColumn + " ASC")
	}

	return q.Limit(uint64(pageSize) + 1)
}

// Finalize turns the rows fetched by a Bound query into a Page.
// rows must be in the order the query returned them.
func Finalize[T any](rows []T, keyOf func(T) string, req Request) Page[T] {
	more := len(rows) > req.PageSize
	if more {
		rows = rows[:req.PageSize]
	}
	if req.Direction == Backward {
		rows = slices.Clone(rows)
		slices.Reverse(rows)
	}
	if rows == nil {
		rows = []T{}
	}

	page := Page[T]{Items: rows, PageSize: req.PageSize}
	if len(rows) == 0 {
		return page
	}

	// A cursor means the caller navigated from a neighbouring page.
	fromCursor := req.Cursor != ""
	if req.Direction == Backward {
		page.HasPreviousPage = more
		page.HasNextPage = fromCursor
	} else {
		page.HasNextPage = more
		page.HasPreviousPage = fromCursor
	}

	if page.HasNextPage {
		c := EncodeCursor(keyOf(rows[len(rows)-1]))
		page.NextCursor = &c
	}
	if page.HasPreviousPage {
		c := EncodeCursor(keyOf(rows[0]))
		page.PreviousCursor = &c
	}

	return page
}

// Window applies the Bound predicate to items already sorted ascending by key,
// returning rows in the same order a Bound query would.
func Window[T any](sorted []T, keyOf func(T) string, key string, hasKey bool, pageSize int, dir Direction) []T {
	limit := pageSize + 1
	out := make([]T, 0, min(limit, len(sorted)))

	if dir == Backward {
		for i := len(sorted) - 1; i >= 0 && len(out) < limit; i-- {
			if hasKey && keyOf(sorted[i]) >= key {
				continue
			}
			out = append(out, sorted[i])
		}
		return out
	}

	for _, it := range sorted {
		if len(out) == limit {
			break
		}
		if hasKey && keyOf(it) <= key {
			continue
		}
		out = append(out, it)
	}
	return out
}
