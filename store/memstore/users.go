package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identikit/pkg/paging"
	"github.com/dmitrymomot/identikit/svc/user"
)

// UserRepository implements user.Repository for one schema. Email and
// username are unique within the schema.
type UserRepository struct {
	store  *Store
	schema string
}

func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, err := r.store.schema(r.schema)
	if err != nil {
		return err
	}
	key := u.ID.String()
	if _, ok := d.users[key]; ok {
		return user.ErrAlreadyExists
	}
	if err := checkUnique(d, key, u); err != nil {
		return err
	}
	d.users[key] = clone(*u)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.find(func(u user.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return r.find(func(u user.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	return r.find(func(u user.User) bool { return u.Username == username })
}

func (r *UserRepository) Update(_ context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, err := r.store.schema(r.schema)
	if err != nil {
		return err
	}
	key := u.ID.String()
	if _, ok := d.users[key]; !ok {
		return user.ErrNotFound
	}
	if err := checkUnique(d, key, u); err != nil {
		return err
	}
	d.users[key] = clone(*u)
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, err := r.store.schema(r.schema)
	if err != nil {
		return err
	}
	key := id.String()
	if _, ok := d.users[key]; !ok {
		return user.ErrNotFound
	}
	delete(d.users, key)
	return nil
}

func (r *UserRepository) List(_ context.Context, req paging.Request) (paging.Page[user.User], error) {
	key, err := req.UUIDKey()
	if err != nil {
		return paging.Page[user.User]{}, err
	}

	r.store.mu.RLock()
	d, err := r.store.schema(r.schema)
	if err != nil {
		r.store.mu.RUnlock()
		return paging.Page[user.User]{}, err
	}
	sorted := make([]user.User, 0, len(d.users))
	for _, u := range d.users {
		sorted = append(sorted, clone(u))
	}
	r.store.mu.RUnlock()

	slices.SortFunc(sorted, func(a, b user.User) int { return strings.Compare(a.Key(), b.Key()) })
	rows := paging.Window(sorted, user.User.Key, deref(key), key != nil, req.PageSize, req.Direction)
	return paging.Finalize(rows, user.User.Key, req), nil
}

func (r *UserRepository) find(match func(user.User) bool) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	d, err := r.store.schema(r.schema)
	if err != nil {
		return nil, err
	}
	for _, u := range d.users {
		if match(u) {
			c := clone(u)
			return &c, nil
		}
	}
	return nil, user.ErrNotFound
}

func checkUnique(d *schemaData, self string, u *user.User) error {
	for key, other := range d.users {
		if key == self {
			continue
		}
		if other.Email == u.Email {
			return user.ErrEmailTaken
		}
		if other.Username == u.Username {
			return user.ErrUsernameTaken
		}
	}
	return nil
}

func clone(u user.User) user.User {
	u.Permissions = slices.Clone(u.Permissions)
	if u.TenantID != nil {
		id := *u.TenantID
		u.TenantID = &id
	}
	return u
}
