package events

import (
	"time"

	"github.com/google/uuid"
)

// Type names a domain event. Values double as message-queue routing keys.
type Type string

const (
	UserCreated   Type = "user.created"
	UserUpdated   Type = "user.updated"
	UserLoggedIn  Type = "user.logged_in"
	TenantCreated Type = "tenant.created"
	TenantUpdated Type = "tenant.updated"
	TenantDeleted Type = "tenant.deleted"
)

// Event is the envelope published for every domain change.
type Event struct {
	ID         uuid.UUID `json:"event_id"`
	Type       Type      `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Schema     string    `json:"schema,omitempty"`
	Payload    any       `json:"payload"`
}

// New builds an event with a fresh ID and the current UTC time.
func New(t Type, schema string, payload any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Schema:     schema,
		Payload:    payload,
	}
}

// Change is an old/new pair for a modified field.
type Change struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type UserPayload struct {
	UserID   uuid.UUID  `json:"user_id"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
	Email    string     `json:"email"`
	Username string     `json:"username"`
	FullName string     `json:"full_name,omitempty"`
}

type UserUpdatedPayload struct {
	UserPayload
	Changes map[string]Change `json:"changes"`
}

type UserLoggedInPayload struct {
	UserID   uuid.UUID  `json:"user_id"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
	Email    string     `json:"email"`
}

type TenantPayload struct {
	TenantID uuid.UUID `json:"tenant_id"`
	Name     string    `json:"name"`
	Domain   string    `json:"domain"`
	IsActive bool      `json:"is_active"`
}

type TenantUpdatedPayload struct {
	TenantPayload
	Changes map[string]Change `json:"changes"`
}
