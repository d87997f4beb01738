package pgstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/identikit/svc/tenant"
	"github.com/dmitrymomot/identikit/svc/user"
)

func TestPermissionsNeverNil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{}, permissions(&user.User{}))
	assert.NotNil(t, permissions(&user.User{}))
	assert.Equal(t, []string{"tenants:read"}, permissions(&user.User{Permissions: []string{"tenants:read"}}))
}

func TestUserError(t *testing.T) {
	t.Parallel()

	other := errors.New("connection reset")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, user.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), user.ErrNotFound},
		{"email", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, user.ErrEmailTaken},
		{"username", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, user.ErrUsernameTaken},
		{"primary key", &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}, user.ErrAlreadyExists},
		{"other", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, userError(tt.err), tt.want)
		})
	}
}

func TestTenantError(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, tenantError(pgx.ErrNoRows), tenant.ErrNotFound)
	assert.ErrorIs(t, tenantError(&pgconn.PgError{Code: "23505", ConstraintName: "tenants_domain_key"}), tenant.ErrAlreadyExists)

	undefined := &pgconn.PgError{Code: "42P01"}
	assert.Same(t, undefined, tenantError(undefined))
}
