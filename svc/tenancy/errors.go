package tenancy

import "errors"

var (
	// ErrInvalidTenantIdentifier is returned when the tenant header is not a UUID.
	ErrInvalidTenantIdentifier = errors.New("invalid tenant identifier")

	// ErrTenantNotFoundOrInactive covers both unknown and deactivated tenants
	// so callers cannot probe which tenants exist.
	ErrTenantNotFoundOrInactive = errors.New("tenant not found or inactive")

	// ErrNoScope is returned when a handler runs outside the tenancy middleware.
	ErrNoScope = errors.New("no data scope in context")
)
