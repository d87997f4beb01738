package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identikit/pkg/jwt"
	"github.com/dmitrymomot/identikit/svc/user"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	jwt.StandardClaims
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	FullName    string   `json:"full_name,omitempty"`
	TenantID    string   `json:"tenant_id,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Type        string   `json:"type"`
}

// RefreshClaims is the payload of a refresh token. Its ID (jti) is the key
// under which the token is stored.
type RefreshClaims struct {
	jwt.StandardClaims
	Type string `json:"type"`
}

// TokenService issues and verifies access/refresh token pairs.
type TokenService struct {
	jwt        *jwt.Service
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(cfg Config, opts ...TokenOption) (*TokenService, error) {
	j, err := jwt.NewFromString(cfg.SecretKey)
	if err != nil {
		return nil, err
	}
	s := &TokenService{
		jwt:        j,
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a fresh access and refresh token for u.
func (s *TokenService) Issue(u *user.User) (user.IssuedTokens, error) {
	now := s.now()
	accessExp := now.Add(s.accessTTL)
	refreshExp := now.Add(s.refreshTTL)

	access := AccessClaims{
		StandardClaims: s.standard(u.ID, now, accessExp),
		Email:          u.Email,
		Username:       u.Username,
		FullName:       u.FullName,
		Role:           u.Role,
		Permissions:    u.Permissions,
		Type:           TokenTypeAccess,
	}
	if u.TenantID != nil {
		access.TenantID = u.TenantID.String()
	}
	if access.Permissions == nil {
		access.Permissions = []string{}
	}
	accessToken, err := s.jwt.Generate(access)
	if err != nil {
		return user.IssuedTokens{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh := RefreshClaims{
		StandardClaims: s.standard(u.ID, now, refreshExp),
		Type:           TokenTypeRefresh,
	}
	refreshToken, err := s.jwt.Generate(refresh)
	if err != nil {
		return user.IssuedTokens{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return user.IssuedTokens{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshID:        refresh.ID,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ParseRefresh verifies a refresh token and returns its subject and ID.
// Access tokens are rejected with ErrWrongTokenType.
func (s *TokenService) ParseRefresh(token string) (user.RefreshClaims, error) {
	var claims RefreshClaims
	if err := s.jwt.Parse(token, &claims); err != nil {
		return user.RefreshClaims{}, err
	}
	if claims.Type != TokenTypeRefresh {
		return user.RefreshClaims{}, ErrWrongTokenType
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return user.RefreshClaims{}, ErrInvalidSubject
	}
	if claims.ID == "" {
		return user.RefreshClaims{}, errors.Join(jwt.ErrInvalidClaims, errors.New("missing jti"))
	}
	return user.RefreshClaims{UserID: id, TokenID: claims.ID}, nil
}

// ParseAccess verifies an access token.
func (s *TokenService) ParseAccess(token string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := s.jwt.Parse(token, &claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	return &claims, nil
}

func (s *TokenService) standard(sub uuid.UUID, now, exp time.Time) jwt.StandardClaims {
	return jwt.StandardClaims{
		ID:        uuid.NewString(),
		Subject:   sub.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NumericDate(now),
		ExpiresAt: jwt.NumericDate(exp),
	}
}
