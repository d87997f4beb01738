package tenant

import "errors"

var (
	ErrNotFound      = errors.New("tenant not found")
	ErrAlreadyExists = errors.New("tenant with this domain already exists")
)
