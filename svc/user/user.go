package user

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRole is assigned to users created without an explicit role.
const DefaultRole = "user"

// User is an account stored in a tenant schema, or in the shared schema when
// no tenant was selected.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	TenantID     *uuid.UUID `json:"tenant_id,omitempty"`
	FullName     string     `json:"full_name,omitempty"`
	Role         string     `json:"role"`
	Permissions  []string   `json:"permissions"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Key is the pagination key of the user.
func (u User) Key() string { return u.ID.String() }

// TokenPair is returned by Login and Refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
