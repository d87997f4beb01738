package paging

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Request describes which window of a collection to fetch.
// Cursor is the raw token received from a client; empty means the first page.
type Request struct {
	Cursor    string
	PageSize  int
	Direction Direction
}

// Validate checks the page size bounds and direction.
func (r Request) Validate() error {
	if r.PageSize < 1 || r.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	if r.Direction != Forward && r.Direction != Backward {
		return ErrInvalidDirection
	}
	return nil
}

// UUIDKey decodes the cursor into the canonical string form of a UUID key.
// It returns nil when no cursor was supplied.
func (r Request) UUIDKey() (*string, error) {
	id, err := DecodeUUIDCursor(r.Cursor)
	if err != nil || id == nil {
		return nil, err
	}
	key := id.String()
	return &key, nil
}

// Page is a window of items in ascending key order.
type Page[T any] struct {
	Items           []T     `json:"items"`
	NextCursor      *string `json:"next_cursor"`
	PreviousCursor  *string `json:"previous_cursor"`
	HasNextPage     bool    `json:"has_next_page"`
	HasPreviousPage bool    `json:"has_previous_page"`
	PageSize        int     `json:"page_size"`
}

// Map converts page items while keeping the cursors and flags.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return Page[U]{
		Items:           items,
		NextCursor:      p.NextCursor,
		PreviousCursor:  p.PreviousCursor,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
		PageSize:        p.PageSize,
	}
}
