package jwt

import (
	"errors"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is implemented by every claims type accepted by Service.
type Claims = gojwt.Claims

// StandardClaims are the registered claims of RFC 7519.
// Embed it in application claim structs.
type StandardClaims = gojwt.RegisteredClaims

// NumericDate converts a time into the claim representation.
var NumericDate = gojwt.NewNumericDate

// Service signs and verifies HS256 tokens.
type Service struct {
	signingKey []byte
	parser     *gojwt.Parser
}

// New creates a Service. The key should be at least 32 bytes.
func New(signingKey []byte) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Service{
		signingKey: signingKey,
		parser:     gojwt.NewParser(gojwt.WithIssuedAt()),
	}, nil
}

// NewFromString is New for string keys.
func NewFromString(signingKey string) (*Service, error) {
	return New([]byte(signingKey))
}

// Generate signs claims and returns the compact token.
func (s *Service) Generate(claims Claims) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return token, nil
}

// Parse verifies tokenString and decodes it into claims.
// Expired tokens yield ErrExpiredToken; every other failure maps onto the
// package sentinels.
func (s *Service) Parse(tokenString string, claims Claims) error {
	if claims == nil {
		return ErrMissingClaims
	}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(t *gojwt.Token) (any, error) {
		if t.Method == nil || t.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
			return nil, ErrUnexpectedSigningAlg
		}
		return s.signingKey, nil
	})
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrUnexpectedSigningAlg):
		return ErrUnexpectedSigningAlg
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, gojwt.ErrTokenInvalidClaims):
		return errors.Join(ErrInvalidClaims, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
