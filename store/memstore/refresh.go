package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore implements user.RefreshTokenStore for one schema.
// Expired entries are treated as absent.
type RefreshTokenStore struct {
	store  *Store
	schema string
}

func (r *RefreshTokenStore) Store(_ context.Context, userID uuid.UUID, tokenID string, expiresAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, err := r.store.schema(r.schema)
	if err != nil {
		return err
	}
	d.tokens[tokenID] = refreshEntry{userID: userID.String(), expiresAt: expiresAt}
	return nil
}

func (r *RefreshTokenStore) Consume(_ context.Context, tokenID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, err := r.store.schema(r.schema)
	if err != nil {
		return false, err
	}
	e, ok := d.tokens[tokenID]
	if !ok {
		return false, nil
	}
	delete(d.tokens, tokenID)
	return r.store.now().Before(e.expiresAt), nil
}

func (r *RefreshTokenStore) RevokeAll(_ context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, err := r.store.schema(r.schema)
	if err != nil {
		return err
	}
	owner := userID.String()
	for id, e := range d.tokens {
		if e.userID == owner {
			delete(d.tokens, id)
		}
	}
	return nil
}
