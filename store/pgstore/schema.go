package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/identikit/pkg/pg"
)

// usersTableDDL mirrors public.users from the shared-schema migrations.
const usersTableDDL = `CREATE TABLE IF NOT EXISTS %s.users (
    id            UUID PRIMARY KEY,
    email         TEXT        NOT NULL,
    username      TEXT        NOT NULL,
    password_hash TEXT        NOT NULL,
    tenant_id     UUID        NULL,
    full_name     TEXT        NOT NULL DEFAULT '',
    role          TEXT        NOT NULL DEFAULT 'user',
    permissions   TEXT[]      NOT NULL DEFAULT '{}',
    is_active     BOOLEAN     NOT NULL DEFAULT TRUE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT users_email_key UNIQUE (email),
    CONSTRAINT users_username_key UNIQUE (username)
)`

// ProvisionSchema creates schema and the tables every tenant owns.
func ProvisionSchema(ctx context.Context, db pg.DBTX, schema string) error {
	if err := pg.CreateSchema(ctx, db, schema); err != nil {
		return fmt.Errorf("create schema %s: %w", schema, err)
	}
	if _, err := db.Exec(ctx, fmt.Sprintf(usersTableDDL, pgx.Identifier{schema}.Sanitize())); err != nil {
		return fmt.Errorf("create users table in %s: %w", schema, err)
	}
	return nil
}
