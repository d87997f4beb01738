package tenancy

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/identikit/pkg/logger"
	"github.com/dmitrymomot/identikit/svc/tenant"
)

type (
	scopeKey  struct{}
	tenantKey struct{}
)

// WithScope stores the request scope in ctx.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFromContext returns the scope opened by Middleware.
func ScopeFromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	return s, ok && s != nil
}

// WithTenant stores the resolved tenant in ctx.
func WithTenant(ctx context.Context, t *tenant.Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// TenantFromContext returns the routed tenant. It is absent on requests
// served from the shared schema.
func TenantFromContext(ctx context.Context) (*tenant.Tenant, bool) {
	t, ok := ctx.Value(tenantKey{}).(*tenant.Tenant)
	return t, ok && t != nil
}

// LoggerExtractor adds tenant_id to records logged with a routed context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if t, ok := TenantFromContext(ctx); ok {
			return logger.TenantID(t.ID), true
		}
		return slog.Attr{}, false
	}
}

// SchemaExtractor adds the active schema to log records.
func SchemaExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if s, ok := ScopeFromContext(ctx); ok {
			return logger.Schema(s.Schema()), true
		}
		return slog.Attr{}, false
	}
}
