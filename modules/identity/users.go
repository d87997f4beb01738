package identity

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identikit/handler"
	"github.com/dmitrymomot/identikit/svc/auth"
	"github.com/dmitrymomot/identikit/svc/tenancy"
	"github.com/dmitrymomot/identikit/svc/user"
)

func (m *Module) createUser(ctx handler.Context, req CreateUserRequest) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}

	params := user.CreateParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	}
	if t, ok := tenancy.TenantFromContext(ctx); ok {
		params.TenantID = &t.ID
	}

	u, err := m.userService(scope).Create(ctx, params)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(u, handler.WithJSONStatus(http.StatusCreated))
}

func (m *Module) listUsers(ctx handler.Context, req ListRequest) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	pr, err := req.pageRequest()
	if err != nil {
		return handler.Fail(err)
	}
	page, err := m.userService(scope).List(ctx, pr)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(page)
}

func (m *Module) getUser(ctx handler.Context, req UserPath) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	u, err := m.userService(scope).Get(ctx, uuid.MustParse(req.ID))
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(u)
}

func (m *Module) updateUser(ctx handler.Context, req UpdateUserRequest) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	u, err := m.userService(scope).Update(ctx, uuid.MustParse(req.ID), user.UpdateParams{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(u)
}

func (m *Module) deleteUser(ctx handler.Context, req UserPath) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	if err := m.userService(scope).Delete(ctx, uuid.MustParse(req.ID)); err != nil {
		return handler.Fail(err)
	}
	return handler.Empty()
}

func (m *Module) login(ctx handler.Context, req LoginRequest) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	pair, err := m.userService(scope).Login(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(pair)
}

func (m *Module) refresh(ctx handler.Context, req RefreshRequest) handler.Response {
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	pair, err := m.userService(scope).Refresh(ctx, req.RefreshToken)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(pair)
}

// me returns the caller identified by the bearer access token, looked up in
// the routed schema.
func (m *Module) me(ctx handler.Context, _ struct{}) handler.Response {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return handler.Fail(auth.ErrUnauthenticated)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return handler.Fail(auth.ErrUnauthenticated)
	}
	scope, err := scopeOf(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	u, err := m.userService(scope).Get(ctx, id)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(u)
}
