package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/identikit/svc/user"
)

// RefreshTokens keeps refresh tokens in Redis, one namespace per schema.
//
// Each token is a key holding the owner's ID with a TTL equal to the token's
// remaining lifetime. A per-user set indexes the tokens for RevokeAll.
type RefreshTokens struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// Option configures RefreshTokens.
type Option func(*RefreshTokens)

func WithClock(now func() time.Time) Option {
	return func(r *RefreshTokens) { r.now = now }
}

func New(client redis.UniversalClient, prefix string, opts ...Option) *RefreshTokens {
	r := &RefreshTokens{client: client, prefix: prefix, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ForSchema returns the store of one schema.
func (r *RefreshTokens) ForSchema(schema string) user.RefreshTokenStore {
	return &schemaStore{parent: r, ns: r.prefix + ":" + schema}
}

type schemaStore struct {
	parent *RefreshTokens
	ns     string
}

// TokenKey is the key of a refresh token in the namespace ns.
func TokenKey(ns, tokenID string) string { return ns + ":refresh:" + tokenID }

// UserSetKey is the key of the set indexing a user's tokens in ns.
func UserSetKey(ns string, userID uuid.UUID) string { return ns + ":user_refresh:" + userID.String() }

func (s *schemaStore) Store(ctx context.Context, userID uuid.UUID, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.parent.now())
	if ttl <= 0 {
		return nil
	}

	setKey := UserSetKey(s.ns, userID)
	_, err := s.parent.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, TokenKey(s.ns, tokenID), userID.String(), ttl)
		p.SAdd(ctx, setKey, tokenID)
		p.ExpireGT(ctx, setKey, ttl)
		p.ExpireNX(ctx, setKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// Consume relies on GETDEL: only one caller receives the stored owner.
func (s *schemaStore) Consume(ctx context.Context, tokenID string) (bool, error) {
	owner, err := s.parent.client.GetDel(ctx, TokenKey(s.ns, tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume refresh token: %w", err)
	}

	if id, err := uuid.Parse(owner); err == nil {
		if err := s.parent.client.SRem(ctx, UserSetKey(s.ns, id), tokenID).Err(); err != nil {
			return true, fmt.Errorf("unindex refresh token: %w", err)
		}
	}
	return true, nil
}

func (s *schemaStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	setKey := UserSetKey(s.ns, userID)
	ids, err := s.parent.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("list refresh tokens: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, TokenKey(s.ns, id))
	}
	keys = append(keys, setKey)

	if err := s.parent.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}
