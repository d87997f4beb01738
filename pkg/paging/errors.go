package paging

import "errors"

var (
	ErrMalformedCursor  = errors.New("paging: malformed cursor")
	ErrInvalidDirection = errors.New("paging: invalid direction")
	ErrInvalidPageSize  = errors.New("paging: invalid page size")
)
