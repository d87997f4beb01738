package identity

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identikit/handler"
	"github.com/dmitrymomot/identikit/svc/tenant"
)

func (m *Module) createTenant(ctx handler.Context, req CreateTenantRequest) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	t, err := m.tenantService(scope).Create(ctx, tenant.CreateParams{Name: req.Name, Domain: req.Domain})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(t, handler.WithJSONStatus(http.StatusCreated))
}

func (m *Module) listTenants(ctx handler.Context, req ListRequest) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	pr, err := req.pageRequest()
	if err != nil {
		return handler.Fail(err)
	}
	page, err := m.tenantService(scope).List(ctx, pr)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(page)
}

func (m *Module) getTenant(ctx handler.Context, req TenantPath) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	t, err := m.tenantService(scope).Get(ctx, uuid.MustParse(req.ID))
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(t)
}

func (m *Module) updateTenant(ctx handler.Context, req UpdateTenantRequest) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	t, err := m.tenantService(scope).Update(ctx, uuid.MustParse(req.ID), tenant.UpdateParams{
		Name:     req.Name,
		Domain:   req.Domain,
		IsActive: req.IsActive,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(t)
}

func (m *Module) deleteTenant(ctx handler.Context, req TenantPath) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	if err := m.tenantService(scope).Delete(ctx, uuid.MustParse(req.ID)); err != nil {
		return handler.Fail(err)
	}
	return handler.Empty()
}
