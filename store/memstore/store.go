package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/identikit/pkg/pg"
	"github.com/dmitrymomot/identikit/svc/tenancy"
	"github.com/dmitrymomot/identikit/svc/tenant"
	"github.com/dmitrymomot/identikit/svc/user"
)

// ErrUnknownSchema is returned when opening a schema that was never
// provisioned by creating its tenant.
var ErrUnknownSchema = errors.New("memstore: schema does not exist")

// Store is an in-memory stand-in for the Postgres and Redis stores.
// It keeps the shared tenant directory and one user table per schema.
type Store struct {
	mu      sync.RWMutex
	tenants map[string]tenant.Tenant
	schemas map[string]*schemaData
	now     func() time.Time

	open atomic.Int64
}

type schemaData struct {
	users  map[string]user.User
	tokens map[string]refreshEntry
}

type refreshEntry struct {
	userID    string
	expiresAt time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used to expire refresh tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		tenants: make(map[string]tenant.Tenant),
		schemas: map[string]*schemaData{pg.DefaultSchema: newSchemaData()},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newSchemaData() *schemaData {
	return &schemaData{
		users:  make(map[string]user.User),
		tokens: make(map[string]refreshEntry),
	}
}

// Open returns a scope bound to schema.
func (s *Store) Open(_ context.Context, schema string) (tenancy.Scope, error) {
	if err := pg.ValidateSchemaName(schema); err != nil {
		return nil, err
	}
	s.mu.RLock()
	_, ok := s.schemas[schema]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, schema)
	}

	s.open.Add(1)
	return &scope{store: s, schema: schema}, nil
}

// OpenScopes reports how many scopes are open and not yet closed.
func (s *Store) OpenScopes() int {
	return int(s.open.Load())
}

// HasSchema reports whether schema is provisioned.
func (s *Store) HasSchema(schema string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.schemas[schema]
	return ok
}

// Tenants returns the tenant directory repository.
func (s *Store) Tenants() *TenantRepository { return &TenantRepository{store: s} }

// Users returns the user repository of schema.
func (s *Store) Users(schema string) *UserRepository {
	return &UserRepository{store: s, schema: schema}
}

// RefreshTokens returns the refresh token store of schema.
func (s *Store) RefreshTokens(schema string) *RefreshTokenStore {
	return &RefreshTokenStore{store: s, schema: schema}
}

// schema returns the data of name; the caller holds s.mu.
func (s *Store) schema(name string) (*schemaData, error) {
	d, ok := s.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	return d, nil
}

type scope struct {
	store  *Store
	schema string
	once   sync.Once
}

func (c *scope) Schema() string                        { return c.schema }
func (c *scope) Tenants() tenant.Repository            { return c.store.Tenants() }
func (c *scope) Users() user.Repository                { return c.store.Users(c.schema) }
func (c *scope) RefreshTokens() user.RefreshTokenStore { return c.store.RefreshTokens(c.schema) }

func (c *scope) Close(context.Context) {
	c.once.Do(func() { c.store.open.Add(-1) })
}
