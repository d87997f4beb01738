package user

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identikit/pkg/paging"
)

// Repository persists users in the schema the caller was routed to.
// Missing rows yield ErrNotFound and unique violations ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, req paging.Request) (paging.Page[User], error)
}

// RefreshTokenStore tracks refresh tokens that may still be exchanged.
type RefreshTokenStore interface {
	Store(ctx context.Context, userID uuid.UUID, tokenID string, expiresAt time.Time) error
	// Consume atomically removes a live token and reports whether it was
	// present. Of several concurrent calls for one token at most one sees true.
	Consume(ctx context.Context, tokenID string) (bool, error)
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// IssuedTokens is a freshly signed access/refresh pair.
type IssuedTokens struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshID        string
	RefreshExpiresAt time.Time
}

// RefreshClaims identifies the owner and ID of a refresh token.
type RefreshClaims struct {
	UserID  uuid.UUID
	TokenID string
}

// TokenIssuer signs and verifies tokens.
type TokenIssuer interface {
	Issue(u *User) (IssuedTokens, error)
	// ParseRefresh verifies a refresh token, rejecting access tokens.
	ParseRefresh(token string) (RefreshClaims, error)
}
