package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is an organisation whose users live in a dedicated database schema.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Key is the pagination key of the tenant.
func (t Tenant) Key() string { return t.ID.String() }
