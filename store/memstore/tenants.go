package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identikit/pkg/paging"
	"github.com/dmitrymomot/identikit/svc/tenancy"
	"github.com/dmitrymomot/identikit/svc/tenant"
)

// TenantRepository implements tenant.Repository. Creating a tenant
// provisions its schema; deleting it drops the schema with its data.
type TenantRepository struct {
	store *Store
}

func (r *TenantRepository) Create(_ context.Context, t *tenant.Tenant) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := t.ID.String()
	if _, ok := s.tenants[key]; ok {
		return tenant.ErrAlreadyExists
	}
	if r.domainOwner(t.Domain) != "" {
		return tenant.ErrAlreadyExists
	}

	s.tenants[key] = *t
	schema := tenancy.SchemaName(t.ID)
	if _, ok := s.schemas[schema]; !ok {
		s.schemas[schema] = newSchemaData()
	}
	return nil
}

func (r *TenantRepository) GetByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.tenants[id.String()]
	if !ok {
		return nil, tenant.ErrNotFound
	}
	return &t, nil
}

func (r *TenantRepository) GetByDomain(_ context.Context, domain string) (*tenant.Tenant, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	key := r.domainOwner(domain)
	if key == "" {
		return nil, tenant.ErrNotFound
	}
	t := r.store.tenants[key]
	return &t, nil
}

func (r *TenantRepository) Update(_ context.Context, t *tenant.Tenant) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := t.ID.String()
	if _, ok := s.tenants[key]; !ok {
		return tenant.ErrNotFound
	}
	if owner := r.domainOwner(t.Domain); owner != "" && owner != key {
		return tenant.ErrAlreadyExists
	}
	s.tenants[key] = *t
	return nil
}

func (r *TenantRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := id.String()
	if _, ok := s.tenants[key]; !ok {
		return tenant.ErrNotFound
	}
	delete(s.tenants, key)
	delete(s.schemas, tenancy.SchemaName(id))
	return nil
}

func (r *TenantRepository) List(_ context.Context, req paging.Request) (paging.Page[tenant.Tenant], error) {
	key, err := req.UUIDKey()
	if err != nil {
		return paging.Page[tenant.Tenant]{}, err
	}

	r.store.mu.RLock()
	sorted := make([]tenant.Tenant, 0, len(r.store.tenants))
	for _, t := range r.store.tenants {
		sorted = append(sorted, t)
	}
	r.store.mu.RUnlock()

	slices.SortFunc(sorted, func(a, b tenant.Tenant) int { return strings.Compare(a.Key(), b.Key()) })
	rows := paging.Window(sorted, tenant.Tenant.Key, deref(key), key != nil, req.PageSize, req.Direction)
	return paging.Finalize(rows, tenant.Tenant.Key, req), nil
}

// domainOwner returns the key of the tenant owning domain; the caller holds
// the store lock.
func (r *TenantRepository) domainOwner(domain string) string {
	for key, t := range r.store.tenants {
		if t.Domain == domain {
			return key
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
