package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateSchema creates schema if it does not exist.
func CreateSchema(ctx context.Context, db DBTX, schema string) error {
	if err := ValidateSchemaName(schema); err != nil {
		return err
	}
	_, err := db.Exec(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pgx.Identifier{schema}.Sanitize()))
	return err
}

// DropSchema removes schema together with every object inside it.
func DropSchema(ctx context.Context, db DBTX, schema string) error {
	if err := ValidateSchemaName(schema); err != nil {
		return err
	}
	if schema == DefaultSchema {
		return ErrInvalidSchemaName
	}
	_, err := db.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", pgx.Identifier{schema}.Sanitize()))
	return err
}
