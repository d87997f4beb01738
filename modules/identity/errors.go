package identity

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/identikit/handler"
	"github.com/dmitrymomot/identikit/pkg/paging"
	"github.com/dmitrymomot/identikit/svc/auth"
	"github.com/dmitrymomot/identikit/svc/tenant"
	"github.com/dmitrymomot/identikit/svc/user"
)

var (
	errInvalidCursor  = handler.NewHTTPError(http.StatusBadRequest, "invalid_cursor")
	errInvalidPaging  = handler.NewHTTPError(http.StatusBadRequest, "invalid_pagination")
	errTenantExists   = handler.NewHTTPError(http.StatusConflict, "tenant_exists")
	errTenantNotFound = handler.NewHTTPError(http.StatusNotFound, "tenant_not_found")
	errUserExists     = handler.NewHTTPError(http.StatusConflict, "user_exists")
	errUserNotFound   = handler.NewHTTPError(http.StatusNotFound, "user_not_found")
	errBadCredentials = handler.NewHTTPError(http.StatusUnauthorized, "invalid_credentials")
	errUserInactive   = handler.NewHTTPError(http.StatusForbidden, "user_inactive")
	errBadRefresh     = handler.NewHTTPError(http.StatusUnauthorized, "invalid_refresh_token")
)

// mapError converts domain errors into client errors. Unknown errors pass
// through and end up as opaque 500s.
func mapError(err error) error {
	switch {
	case errors.Is(err, paging.ErrMalformedCursor):
		return errInvalidCursor.WithMessage("malformed cursor").Wrap(err)
	case errors.Is(err, paging.ErrInvalidDirection), errors.Is(err, paging.ErrInvalidPageSize):
		return errInvalidPaging.WithMessage(err.Error()).Wrap(err)
	case errors.Is(err, tenant.ErrAlreadyExists):
		return errTenantExists.WithMessage("a tenant with this domain already exists").Wrap(err)
	case errors.Is(err, tenant.ErrNotFound):
		return errTenantNotFound.WithMessage("tenant not found").Wrap(err)
	case errors.Is(err, user.ErrEmailTaken):
		return errUserExists.WithMessage("email is already registered").Wrap(err)
	case errors.Is(err, user.ErrUsernameTaken):
		return errUserExists.WithMessage("username is already taken").Wrap(err)
	case errors.Is(err, user.ErrAlreadyExists):
		return errUserExists.WithMessage("user already exists").Wrap(err)
	case errors.Is(err, user.ErrNotFound):
		return errUserNotFound.WithMessage("user not found").Wrap(err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return errBadCredentials.WithMessage(user.ErrInvalidCredentials.Error()).Wrap(err)
	case errors.Is(err, user.ErrUserInactive):
		return errUserInactive.WithMessage(user.ErrUserInactive.Error()).Wrap(err)
	case errors.Is(err, user.ErrInvalidRefreshToken):
		return errBadRefresh.WithMessage(user.ErrInvalidRefreshToken.Error()).Wrap(err)
	case errors.Is(err, auth.ErrUnauthenticated):
		return handler.ErrUnauthorized.Wrap(err)
	default:
		return err
	}
}
