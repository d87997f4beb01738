package tenancy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/identikit/handler"
	"github.com/dmitrymomot/identikit/pkg/logger"
	"github.com/dmitrymomot/identikit/pkg/pg"
	"github.com/dmitrymomot/identikit/svc/tenant"
)

// HeaderTenantID carries the tenant identifier on inbound requests.
const HeaderTenantID = "X-Tenant-ID"

// ErrorHandler renders a failure to open the request scope.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	header        string
	defaultSchema string
	errorHandler  ErrorHandler
	log           *slog.Logger
}

// Option configures Middleware.
type Option func(*config)

// WithHeader reads the tenant identifier from a different header.
func WithHeader(name string) Option {
	return func(c *config) { c.header = name }
}

// WithDefaultSchema changes the schema used for requests without a tenant.
func WithDefaultSchema(schema string) Option {
	return func(c *config) { c.defaultSchema = schema }
}

// WithErrorHandler replaces the JSON renderer used when a scope cannot be opened.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) { c.errorHandler = h }
}

// WithLogger sets the logger for scope failures.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) { c.log = log }
}

// MapError converts resolution failures into HTTP errors. Other errors are
// returned unchanged.
func MapError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidTenantIdentifier):
		return handler.ErrBadRequest.Wrap(err).WithMessage(ErrInvalidTenantIdentifier.Error())
	case errors.Is(err, ErrTenantNotFoundOrInactive):
		return handler.ErrForbidden.Wrap(err).WithMessage(ErrTenantNotFoundOrInactive.Error())
	default:
		return err
	}
}

// Middleware opens a Scope for every request and closes it once the
// downstream handler returns, panics included.
//
// Without a tenant header the request runs in the default schema. With one,
// the tenant is resolved through a default-schema scope, which is closed
// before the tenant's own scope is opened. A failed resolution ends the
// request without reaching next.
func Middleware(opener Opener, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		header:        HeaderTenantID,
		defaultSchema: pg.DefaultSchema,
		log:           logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = defaultErrorHandler(cfg.log)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			base, err := opener.Open(ctx, cfg.defaultSchema)
			if err != nil {
				cfg.errorHandler(w, r, fmt.Errorf("open default scope: %w", err))
				return
			}

			identifier := r.Header.Get(cfg.header)
			if identifier == "" {
				defer base.Close(ctx)
				next.ServeHTTP(w, r.WithContext(WithScope(ctx, base)))
				return
			}

			t, err := resolveIn(ctx, base, identifier)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			scope, err := opener.Open(ctx, SchemaName(t.ID))
			if err != nil {
				cfg.errorHandler(w, r, fmt.Errorf("open tenant scope: %w", err))
				return
			}
			defer scope.Close(ctx)

			ctx = WithTenant(WithScope(ctx, scope), t)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveIn resolves the tenant and closes base on every exit path.
func resolveIn(ctx context.Context, base Scope, identifier string) (*tenant.Tenant, error) {
	defer base.Close(ctx)
	return Resolve(ctx, base.Tenants(), identifier)
}

func defaultErrorHandler(log *slog.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		mapped := MapError(err)
		if handler.StatusOf(mapped) >= http.StatusInternalServerError {
			log.ErrorContext(r.Context(), "failed to open request scope", logger.Error(err))
		}
		if renderErr := handler.JSONError(mapped).Render(w, r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
