package pgstore

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/identikit/pkg/paging"
	"github.com/dmitrymomot/identikit/pkg/pg"
	"github.com/dmitrymomot/identikit/svc/tenancy"
	"github.com/dmitrymomot/identikit/svc/tenant"
)

// The tenant directory is always addressed through the shared schema, so it
// is reachable from a session routed to any tenant.
const tenantsTable = "public.tenants"

var tenantColumns = []string{"id", "name", "domain", "is_active", "created_at", "updated_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// TenantRepository implements tenant.Repository on Postgres.
type TenantRepository struct {
	db pg.DBTX
}

func NewTenantRepository(db pg.DBTX) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create inserts t and provisions its schema in one transaction.
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	query, args, err := psql.Insert(tenantsTable).
		Columns(tenantColumns...).
		Values(t.ID, t.Name, t.Domain, t.IsActive, t.CreatedAt, t.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert tenant: %w", err)
	}

	return pg.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return tenantError(err)
		}
		return ProvisionSchema(ctx, tx, tenancy.SchemaName(t.ID))
	})
}

func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *TenantRepository) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	return r.getOne(ctx, sq.Eq{"domain": domain})
}

func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	query, args, err := psql.Update(tenantsTable).
		Set("name", t.Name).
		Set("domain", t.Domain).
		Set("is_active", t.IsActive).
		Set("updated_at", t.UpdatedAt).
		Where(sq.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update tenant: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return tenantError(err)
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrNotFound
	}
	return nil
}

// Delete removes the tenant row and drops its schema with all data in it.
func (r *TenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(tenantsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete tenant: %w", err)
	}

	return pg.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return tenantError(err)
		}
		if tag.RowsAffected() == 0 {
			return tenant.ErrNotFound
		}
		return pg.DropSchema(ctx, tx, tenancy.SchemaName(id))
	})
}

func (r *TenantRepository) List(ctx context.Context, req paging.Request) (paging.Page[tenant.Tenant], error) {
	key, err := req.UUIDKey()
	if err != nil {
		return paging.Page[tenant.Tenant]{}, err
	}

	q := paging.Bound(psql.Select(tenantColumns...).From(tenantsTable), "id", key, req.PageSize, req.Direction)
	query, args, err := q.ToSql()
	if err != nil {
		return paging.Page[tenant.Tenant]{}, fmt.Errorf("build list tenants: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return paging.Page[tenant.Tenant]{}, fmt.Errorf("list tenants: %w", err)
	}
	items, err := pgx.CollectRows(rows, scanTenant)
	if err != nil {
		return paging.Page[tenant.Tenant]{}, fmt.Errorf("scan tenants: %w", err)
	}

	return paging.Finalize(items, tenant.Tenant.Key, req), nil
}

func (r *TenantRepository) getOne(ctx context.Context, where sq.Eq) (*tenant.Tenant, error) {
	query, args, err := psql.Select(tenantColumns...).From(tenantsTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tenant: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select tenant: %w", err)
	}
	t, err := pgx.CollectExactlyOneRow(rows, scanTenant)
	if err != nil {
		return nil, tenantError(err)
	}
	return &t, nil
}

func scanTenant(row pgx.CollectableRow) (tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Domain, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
