package identity

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/identikit/binder"
	"github.com/dmitrymomot/identikit/handler"
	"github.com/dmitrymomot/identikit/pkg/logger"
	"github.com/dmitrymomot/identikit/svc/auth"
	"github.com/dmitrymomot/identikit/svc/events"
	"github.com/dmitrymomot/identikit/svc/tenancy"
	"github.com/dmitrymomot/identikit/svc/tenant"
	"github.com/dmitrymomot/identikit/svc/user"
)

// Deps are the collaborators of the identity API.
type Deps struct {
	Opener tenancy.Opener
	Tokens *auth.TokenService
	Hasher user.PasswordHasher
	Events events.Publisher
	Logger *slog.Logger
}

// Module serves the tenant and user HTTP API.
type Module struct {
	opener       tenancy.Opener
	tokens       *auth.TokenService
	hasher       user.PasswordHasher
	events       events.Publisher
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

func New(d Deps) *Module {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}
	return &Module{
		opener:       d.Opener,
		tokens:       d.Tokens,
		hasher:       d.Hasher,
		events:       d.Events,
		log:          d.Logger,
		errorHandler: handler.JSONErrorHandler[handler.Context](d.Logger, tenancy.MapError, mapError),
	}
}

// Router returns the API routes. Every request runs inside a tenancy scope
// chosen by the X-Tenant-ID header.
//
//	r := chi.NewRouter()
//	r.Mount("/", identity.New(deps).Router())
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(tenancy.Middleware(m.opener,
		tenancy.WithLogger(m.log),
		tenancy.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			m.errorHandler(handler.NewContext(w, r), err)
		}),
	))
	r.Use(auth.Middleware(m.tokens, nil, m.log))

	r.Route("/tenants", func(r chi.Router) {
		r.Post("/", wrap(m, m.createTenant, binder.JSON(), binder.Validate()))
		r.Get("/", wrap(m, m.listTenants, binder.Query(), binder.Validate()))
		r.Get("/{tenant_id}", wrap(m, m.getTenant, pathBinder(), binder.Validate()))
		r.Put("/{tenant_id}", wrap(m, m.updateTenant, binder.JSON(), pathBinder(), binder.Validate()))
		r.Patch("/{tenant_id}", wrap(m, m.updateTenant, binder.JSON(), pathBinder(), binder.Validate()))
		r.Delete("/{tenant_id}", wrap(m, m.deleteTenant, pathBinder(), binder.Validate()))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", wrap(m, m.createUser, binder.JSON(), binder.Validate()))
		r.Get("/", wrap(m, m.listUsers, binder.Query(), binder.Validate()))
		r.Post("/login", wrap(m, m.login, binder.JSON(), binder.Validate()))
		r.Post("/refresh", wrap(m, m.refresh, binder.JSON(), binder.Validate()))
		r.Get("/me", wrap(m, m.me))
		r.Get("/{user_id}", wrap(m, m.getUser, pathBinder(), binder.Validate()))
		r.Put("/{user_id}", wrap(m, m.updateUser, binder.JSON(), pathBinder(), binder.Validate()))
		r.Patch("/{user_id}", wrap(m, m.updateUser, binder.JSON(), pathBinder(), binder.Validate()))
		r.Delete("/{user_id}", wrap(m, m.deleteUser, pathBinder(), binder.Validate()))
	})

	return r
}

func wrap[R any](m *Module, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](m.errorHandler),
	)
}

func pathBinder() handler.Bind {
	return binder.Path(chi.URLParam)
}

func (m *Module) tenantService(scope tenancy.Scope) *tenant.Service {
	return tenant.NewService(scope.Tenants(), m.events, m.log)
}

func (m *Module) userService(scope tenancy.Scope) *user.Service {
	return user.NewService(user.Deps{
		Users:         scope.Users(),
		RefreshTokens: scope.RefreshTokens(),
		Tokens:        m.tokens,
		Hasher:        m.hasher,
		Events:        m.events,
		Logger:        m.log,
		Schema:        scope.Schema(),
	})
}

func scopeOf(ctx context.Context) (tenancy.Scope, error) {
	scope, ok := tenancy.ScopeFromContext(ctx)
	if !ok {
		return nil, tenancy.ErrNoScope
	}
	return scope, nil
}
