package tenancy

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identikit/svc/tenant"
)

const (
	// SchemaPrefix namespaces tenant schemas away from the shared one.
	SchemaPrefix = "tenant_"

	// SchemaHexLength is how many hex characters of the tenant ID name its
	// schema. 16 characters keep 64 bits, so collisions stay unlikely until
	// billions of tenants exist.
	SchemaHexLength = 16
)

// SchemaName derives the schema of the tenant with the given ID.
func SchemaName(id uuid.UUID) string {
	return SchemaPrefix + hex.EncodeToString(id[:])[:SchemaHexLength]
}

// Resolve maps identifier to an active tenant looked up in tenants.
//
// A malformed identifier yields ErrInvalidTenantIdentifier. Missing and
// inactive tenants both yield ErrTenantNotFoundOrInactive.
func Resolve(ctx context.Context, tenants tenant.Repository, identifier string) (*tenant.Tenant, error) {
	id, err := uuid.Parse(identifier)
	if err != nil {
		return nil, ErrInvalidTenantIdentifier
	}

	t, err := tenants.GetByID(ctx, id)
	if errors.Is(err, tenant.ErrNotFound) {
		return nil, ErrTenantNotFoundOrInactive
	}
	if err != nil {
		return nil, fmt.Errorf("resolve tenant: %w", err)
	}
	if !t.IsActive {
		return nil, ErrTenantNotFoundOrInactive
	}

	return t, nil
}
