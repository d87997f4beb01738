package pgstore

import (
	"github.com/dmitrymomot/identikit/pkg/pg"
	"github.com/dmitrymomot/identikit/svc/tenant"
	"github.com/dmitrymomot/identikit/svc/user"
)

const (
	constraintUserEmail    = "users_email_key"
	constraintUserUsername = "users_username_key"
)

func tenantError(err error) error {
	switch {
	case pg.IsNotFoundError(err):
		return tenant.ErrNotFound
	case pg.IsDuplicateKeyError(err):
		return tenant.ErrAlreadyExists
	default:
		return err
	}
}

func userError(err error) error {
	switch {
	case pg.IsNotFoundError(err):
		return user.ErrNotFound
	case pg.IsDuplicateKeyError(err):
		switch pg.ConstraintName(err) {
		case constraintUserEmail:
			return user.ErrEmailTaken
		case constraintUserUsername:
			return user.ErrUsernameTaken
		default:
			return user.ErrAlreadyExists
		}
	default:
		return err
	}
}
