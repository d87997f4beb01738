package jwt

import "errors"

var (
	ErrInvalidToken         = errors.New("jwt: invalid token")
	ErrExpiredToken         = errors.New("jwt: token is expired")
	ErrMissingSigningKey    = errors.New("jwt: missing signing key")
	ErrMissingClaims        = errors.New("jwt: missing claims")
	ErrInvalidClaims        = errors.New("jwt: invalid claims")
	ErrInvalidSignature     = errors.New("jwt: invalid signature")
	ErrUnexpectedSigningAlg = errors.New("jwt: unexpected signing method")
)
