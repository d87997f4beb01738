package user

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("user not found")
	ErrAlreadyExists       = errors.New("user already exists")
	ErrEmailTaken          = fmt.Errorf("%w: email is already registered", ErrAlreadyExists)
	ErrUsernameTaken       = fmt.Errorf("%w: username is already taken", ErrAlreadyExists)
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserInactive        = errors.New("user account is inactive")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)
