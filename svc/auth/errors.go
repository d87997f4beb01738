package auth

import "errors"

var (
	ErrWrongTokenType   = errors.New("auth: unexpected token type")
	ErrInvalidSubject   = errors.New("auth: token subject is not a user id")
	ErrUnauthenticated  = errors.New("auth: authentication required")
	ErrPasswordMismatch = errors.New("auth: password does not match")
)
