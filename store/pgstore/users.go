package pgstore

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/identikit/pkg/paging"
	"github.com/dmitrymomot/identikit/pkg/pg"
	"github.com/dmitrymomot/identikit/svc/user"
)

// usersTable is unqualified: it resolves through the session's search_path.
const usersTable = "users"

var userColumns = []string{
	"id", "email", "username", "password_hash", "tenant_id", "full_name",
	"role", "permissions", "is_active", "created_at", "updated_at",
}

// UserRepository implements user.Repository in whatever schema db is
// routed to.
type UserRepository struct {
	db pg.DBTX
}

func NewUserRepository(db pg.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query, args, err := psql.Insert(usersTable).
		Columns(userColumns...).
		Values(u.ID, u.Email, u.Username, u.PasswordHash, u.TenantID, u.FullName,
			u.Role, permissions(u), u.IsActive, u.CreatedAt, u.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return userError(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.getOne(ctx, sq.Eq{"username": username})
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query, args, err := psql.Update(usersTable).
		Set("email", u.Email).
		Set("username", u.Username).
		Set("password_hash", u.PasswordHash).
		Set("full_name", u.FullName).
		Set("role", u.Role).
		Set("permissions", permissions(u)).
		Set("is_active", u.IsActive).
		Set("updated_at", u.UpdatedAt).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return userError(err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(usersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete user: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return userError(err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, req paging.Request) (paging.Page[user.User], error) {
	key, err := req.UUIDKey()
	if err != nil {
		return paging.Page[user.User]{}, err
	}

	q := paging.Bound(psql.Select(userColumns...).From(usersTable), "id", key, req.PageSize, req.Direction)
	query, args, err := q.ToSql()
	if err != nil {
		return paging.Page[user.User]{}, fmt.Errorf("build list users: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return paging.Page[user.User]{}, fmt.Errorf("list users: %w", err)
	}
	items, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return paging.Page[user.User]{}, fmt.Errorf("scan users: %w", err)
	}

	return paging.Finalize(items, user.User.Key, req), nil
}

func (r *UserRepository) getOne(ctx context.Context, where sq.Eq) (*user.User, error) {
	query, args, err := psql.Select(userColumns...).From(usersTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		return nil, userError(err)
	}
	return &u, nil
}

func scanUser(row pgx.CollectableRow) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.TenantID, &u.FullName,
		&u.Role, &u.Permissions, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// permissions never yields nil: the column is NOT NULL and pgx encodes a nil
// slice as NULL.
func permissions(u *user.User) []string {
	if u.Permissions == nil {
		return []string{}
	}
	return u.Permissions
}
