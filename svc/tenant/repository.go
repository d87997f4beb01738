package tenant

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identikit/pkg/paging"
)

// Repository persists tenants in the shared schema.
//
// Implementations return ErrNotFound for missing rows and ErrAlreadyExists
// when a domain uniqueness constraint is violated. List returns tenants
// ordered by ID.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, req paging.Request) (paging.Page[Tenant], error)
}
