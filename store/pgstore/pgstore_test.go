package pgstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identikit/db"
	"github.com/dmitrymomot/identikit/pkg/logger"
	"github.com/dmitrymomot/identikit/pkg/paging"
	"github.com/dmitrymomot/identikit/pkg/pg"
	"github.com/dmitrymomot/identikit/store/memstore"
	"github.com/dmitrymomot/identikit/store/pgstore"
	"github.com/dmitrymomot/identikit/svc/tenancy"
	"github.com/dmitrymomot/identikit/svc/tenant"
	"github.com/dmitrymomot/identikit/svc/user"
)

// Requires a reachable database; set PG_TEST_URL to run.
func TestOpenerRoutesUsersToTenantSchema(t *testing.T) {
	url := os.Getenv("PG_TEST_URL")
	if url == "" {
		t.Skip("PG_TEST_URL not set")
	}

	ctx := context.Background()
	cfg := pg.Config{
		ConnectionString: url,
		MaxOpenConns:     4,
		RetryAttempts:    1,
		RetryInterval:    time.Second,
		MigrationsTable:  "schema_migrations",
		ReleaseTimeout:   time.Second,
	}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pg.Migrate(ctx, pool, db.Migrations, db.MigrationsDir, cfg, logger.Discard()))

	refresh := memstore.New()
	opener := pgstore.NewOpener(pg.NewSessions(pool, cfg, nil), func(schema string) user.RefreshTokenStore {
		return refresh.RefreshTokens(pg.DefaultSchema)
	})

	base, err := opener.Open(ctx, pg.DefaultSchema)
	require.NoError(t, err)
	defer base.Close(ctx)

	id, err := uuid.NewV7()
	require.NoError(t, err)
	now := time.Now().UTC().Truncate(time.Microsecond)
	tn := &tenant.Tenant{ID: id, Name: "Acme", Domain: id.String() + ".test", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, base.Tenants().Create(ctx, tn))
	t.Cleanup(func() {
		cleanup, err := opener.Open(ctx, pg.DefaultSchema)
		if err != nil {
			return
		}
		defer cleanup.Close(ctx)
		_ = cleanup.Tenants().Delete(ctx, id)
	})

	dup := *tn
	dup.ID = uuid.New()
	assert.ErrorIs(t, base.Tenants().Create(ctx, &dup), tenant.ErrAlreadyExists)

	scope, err := opener.Open(ctx, tenancy.SchemaName(id))
	require.NoError(t, err)
	defer scope.Close(ctx)

	uid, err := uuid.NewV7()
	require.NoError(t, err)
	u := &user.User{
		ID: uid, Email: "ada@" + id.String(), Username: "ada-" + id.String(), PasswordHash: "x",
		TenantID: &id, Role: user.DefaultRole, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, scope.Users().Create(ctx, u))

	got, err := scope.Users().GetByID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, []string{}, got.Permissions)

	got.Permissions = nil
	got.FullName = "Ada Lovelace"
	require.NoError(t, scope.Users().Update(ctx, got))
	updated, err := scope.Users().GetByID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.FullName)
	assert.Equal(t, []string{}, updated.Permissions)

	_, err = base.Users().GetByID(ctx, uid)
	assert.ErrorIs(t, err, user.ErrNotFound)

	page, err := scope.Users().List(ctx, paging.Request{PageSize: 10, Direction: paging.Forward})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.False(t, page.HasNextPage)

	fromTenant, err := scope.Tenants().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, tn.Domain, fromTenant.Domain)
}
