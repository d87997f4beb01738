package pgstore

import (
	"context"

	"github.com/dmitrymomot/identikit/pkg/pg"
	"github.com/dmitrymomot/identikit/svc/tenancy"
	"github.com/dmitrymomot/identikit/svc/tenant"
	"github.com/dmitrymomot/identikit/svc/user"
)

// RefreshTokensFunc returns the refresh token store of a schema.
type RefreshTokensFunc func(schema string) user.RefreshTokenStore

// Opener opens request scopes backed by schema-pinned pg sessions.
type Opener struct {
	sessions *pg.Sessions
	refresh  RefreshTokensFunc
}

func NewOpener(sessions *pg.Sessions, refresh RefreshTokensFunc) *Opener {
	return &Opener{sessions: sessions, refresh: refresh}
}

// Open acquires a session whose search_path is schema. The scope owns the
// session until Close.
func (o *Opener) Open(ctx context.Context, schema string) (tenancy.Scope, error) {
	sess, err := o.sessions.Acquire(ctx, schema)
	if err != nil {
		return nil, err
	}
	return &scope{sess: sess, refresh: o.refresh(schema)}, nil
}

type scope struct {
	sess    *pg.Session
	refresh user.RefreshTokenStore
}

func (s *scope) Schema() string                        { return s.sess.Schema() }
func (s *scope) Tenants() tenant.Repository            { return NewTenantRepository(s.sess) }
func (s *scope) Users() user.Repository                { return NewUserRepository(s.sess) }
func (s *scope) RefreshTokens() user.RefreshTokenStore { return s.refresh }
func (s *scope) Close(ctx context.Context)             { s.sess.Release(ctx) }
