package paging_test

import (
	"fmt"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identikit/pkg/paging"
)

func key(i int) string { return fmt.Sprintf("k%03d", i) }

func keys(n int) []string {
	out := make([]string, n)
	for i := range n {
		out[i] = key(i + 1)
	}
	return out
}

func identity(s string) string { return s }

// fetch emulates a repository: window over sorted data, then finalize.
func fetch(t *testing.T, data []string, req paging.Request) paging.Page[string] {
	t.Helper()

	var (
		k      string
		hasKey bool
	)
	if req.Cursor != "" {
		var err error
		k, err = paging.DecodeCursor(req.Cursor)
		require.NoError(t, err)
		hasKey = true
	}

	rows := paging.Window(data, identity, k, hasKey, req.PageSize, req.Direction)
	return paging.Finalize(rows, identity, req)
}

func TestBound(t *testing.T) {
	t.Parallel()

	base := sq.Select("id", "name").From("tenants").PlaceholderFormat(sq.Dollar)
	k := "0198a3f2-7c1e-7b4a-9e21-3c5d6f7a8b9c"

	tests := []struct {
		name     string
		key      *string
		dir      paging.Direction
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "first page forward",
			dir:     paging.Forward,
			wantSQL: "SELECT id, name FROM tenants ORDER BY id ASC LIMIT 11",
		},
		{
			name:     "forward after key",
			key:      &k,
			dir:      paging.Forward,
			wantSQL:  "SELECT id, name FROM tenants WHERE id > $1 ORDER BY id ASC LIMIT 11",
			wantArgs: []any{k},
		},
		{
			name:     "backward before key",
			key:      &k,
			dir:      paging.Backward,
			wantSQL:  "SELECT id, name FROM tenants WHERE id < $1 ORDER BY id DESC LIMIT 11",
			wantArgs: []any{k},
		},
		{
			name:    "backward without key",
			dir:     paging.Backward,
			wantSQL: "SELECT id, name FROM tenants ORDER BY id DESC LIMIT 11",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			query, args, err := paging.Bound(base, "id", tt.key, 10, tt.dir).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestFinalizeEmpty(t *testing.T) {
	t.Parallel()

	for _, dir := range []paging.Direction{paging.Forward, paging.Backward} {
		page := paging.Finalize[string](nil, identity, paging.Request{PageSize: 10, Direction: dir})
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasNextPage)
		assert.False(t, page.HasPreviousPage)
		assert.Nil(t, page.NextCursor)
		assert.Nil(t, page.PreviousCursor)
		assert.Equal(t, 10, page.PageSize)
	}
}

func TestFinalizeBackwardIsAscending(t *testing.T) {
	t.Parallel()

	rows := []string{key(9), key(8), key(7), key(6)}
	page := paging.Finalize(rows, identity, paging.Request{
		Cursor:    paging.EncodeCursor(key(10)),
		PageSize:  3,
		Direction: paging.Backward,
	})

	assert.Equal(t, []string{key(7), key(8), key(9)}, page.Items)
	assert.True(t, page.HasPreviousPage)
	assert.True(t, page.HasNextPage)
	require.NotNil(t, page.PreviousCursor)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, paging.EncodeCursor(key(7)), *page.PreviousCursor)
	assert.Equal(t, paging.EncodeCursor(key(9)), *page.NextCursor)
}

func TestFifteenItemsForward(t *testing.T) {
	t.Parallel()

	data := keys(15)

	first := fetch(t, data, paging.Request{PageSize: 10, Direction: paging.Forward})
	require.Len(t, first.Items, 10)
	assert.True(t, first.HasNextPage)
	assert.False(t, first.HasPreviousPage)
	require.NotNil(t, first.NextCursor)
	assert.Equal(t, paging.EncodeCursor(key(10)), *first.NextCursor)
	assert.Nil(t, first.PreviousCursor)

	second := fetch(t, data, paging.Request{Cursor: *first.NextCursor, PageSize: 10, Direction: paging.Forward})
	assert.Equal(t, data[10:], second.Items)
	assert.False(t, second.HasNextPage)
	assert.Nil(t, second.NextCursor)
	assert.True(t, second.HasPreviousPage)
}

func TestPageSizeBound(t *testing.T) {
	t.Parallel()

	data := keys(37)
	for _, size := range []int{1, 2, 5, 10, 36, 37, 38, 100} {
		for _, dir := range []paging.Direction{paging.Forward, paging.Backward} {
			page := fetch(t, data, paging.Request{PageSize: size, Direction: dir})
			assert.LessOrEqual(t, len(page.Items), size)
			assert.Equal(t, size, page.PageSize)
		}
	}
}

func TestIdempotentRefetch(t *testing.T) {
	t.Parallel()

	data := keys(25)
	req := paging.Request{Cursor: paging.EncodeCursor(key(7)), PageSize: 6, Direction: paging.Forward}

	assert.Equal(t, fetch(t, data, req), fetch(t, data, req))

	req.Direction = paging.Backward
	assert.Equal(t, fetch(t, data, req), fetch(t, data, req))
}

func TestExhaustiveWalkAndSymmetry(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ total, size int }{
		{0, 3}, {1, 1}, {7, 3}, {9, 3}, {15, 10}, {50, 7},
	} {
		t.Run(fmt.Sprintf("%d_by_%d", tc.total, tc.size), func(t *testing.T) {
			t.Parallel()

			data := keys(tc.total)

			var (
				forwardPages [][]string
				visited      []string
			)
			req := paging.Request{PageSize: tc.size, Direction: paging.Forward}
			for {
				page := fetch(t, data, req)
				if len(page.Items) > 0 {
					forwardPages = append(forwardPages, page.Items)
				}
				visited = append(visited, page.Items...)
				if !page.HasNextPage {
					break
				}
				require.NotNil(t, page.NextCursor)
				req.Cursor = *page.NextCursor
			}
			require.Len(t, visited, len(data))
			if len(data) > 0 {
				assert.Equal(t, data, visited)
			}

			if len(forwardPages) < 2 {
				return
			}

			// Walk back from the last page's previous cursor.
			last := fetch(t, data, req)
			require.NotNil(t, last.PreviousCursor)

			var backwardPages [][]string
			back := paging.Request{Cursor: *last.PreviousCursor, PageSize: tc.size, Direction: paging.Backward}
			for {
				page := fetch(t, data, back)
				backwardPages = append(backwardPages, page.Items)
				if !page.HasPreviousPage {
					break
				}
				require.NotNil(t, page.PreviousCursor)
				back.Cursor = *page.PreviousCursor
			}

			for i, page := range backwardPages {
				assert.Equal(t, forwardPages[len(forwardPages)-2-i], page)
			}
			assert.Len(t, backwardPages, len(forwardPages)-1)
		})
	}
}

func TestDeletedCursorKeyIsNotAnError(t *testing.T) {
	t.Parallel()

	data := []string{key(1), key(2), key(4), key(5)}
	page := fetch(t, data, paging.Request{Cursor: paging.EncodeCursor(key(3)), PageSize: 10, Direction: paging.Forward})
	assert.Equal(t, []string{key(4), key(5)}, page.Items)
}

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, paging.Request{PageSize: 1, Direction: paging.Forward}.Validate())
	assert.NoError(t, paging.Request{PageSize: 100, Direction: paging.Backward}.Validate())
	assert.ErrorIs(t, paging.Request{PageSize: 0, Direction: paging.Forward}.Validate(), paging.ErrInvalidPageSize)
	assert.ErrorIs(t, paging.Request{PageSize: 101, Direction: paging.Forward}.Validate(), paging.ErrInvalidPageSize)
	assert.ErrorIs(t, paging.Request{PageSize: 10}.Validate(), paging.ErrInvalidDirection)
}
