package tenant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/identikit/pkg/paging"
	"github.com/dmitrymomot/identikit/store/memstore"
	"github.com/dmitrymomot/identikit/svc/events"
	"github.com/dmitrymomot/identikit/svc/tenant"
)

func ptr[T any](v T) *T { return &v }

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newService(t *testing.T) (*tenant.Service, *events.Recorder, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	rec := &events.Recorder{}
	svc := tenant.NewService(memstore.New().Tenants(), rec, nil, tenant.WithClock(c.Now))
	return svc, rec, c
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, rec, c := newService(t)

	created, err := svc.Create(ctx, tenant.CreateParams{Name: "Acme", Domain: "acme.example.com"})
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), created.ID.Version())
	assert.True(t, created.IsActive)
	assert.Equal(t, c.now, created.CreatedAt)
	assert.Equal(t, c.now, created.UpdatedAt)

	_, err = svc.Create(ctx, tenant.CreateParams{Name: "Other", Domain: "acme.example.com"})
	assert.ErrorIs(t, err, tenant.ErrAlreadyExists)

	require.Equal(t, []events.Type{events.TenantCreated}, rec.Types())
	p, ok := rec.Events()[0].Payload.(events.TenantPayload)
	require.True(t, ok)
	assert.Equal(t, created.ID, p.TenantID)
	assert.Equal(t, "acme.example.com", p.Domain)
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("merges fields and records changes", func(t *testing.T) {
		t.Parallel()
		svc, rec, c := newService(t)
		created, err := svc.Create(ctx, tenant.CreateParams{Name: "Acme", Domain: "acme.example.com"})
		require.NoError(t, err)

		c.now = c.now.Add(time.Hour)
		updated, err := svc.Update(ctx, created.ID, tenant.UpdateParams{Name: ptr("Acme Inc")})
		require.NoError(t, err)
		assert.Equal(t, "Acme Inc", updated.Name)
		assert.Equal(t, "acme.example.com", updated.Domain)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, c.now, updated.UpdatedAt)

		require.Equal(t, []events.Type{events.TenantCreated, events.TenantUpdated}, rec.Types())
		p, ok := rec.Events()[1].Payload.(events.TenantUpdatedPayload)
		require.True(t, ok)
		assert.Equal(t, map[string]events.Change{"name": {Old: "Acme", New: "Acme Inc"}}, p.Changes)
	})

	t.Run("an empty update still refreshes updated_at", func(t *testing.T) {
		t.Parallel()
		svc, _, c := newService(t)
		created, err := svc.Create(ctx, tenant.CreateParams{Name: "Acme", Domain: "acme.example.com"})
		require.NoError(t, err)

		c.now = c.now.Add(time.Minute)
		updated, err := svc.Update(ctx, created.ID, tenant.UpdateParams{})
		require.NoError(t, err)
		assert.Equal(t, c.now, updated.UpdatedAt)
	})

	t.Run("domain owned by another tenant", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)
		_, err := svc.Create(ctx, tenant.CreateParams{Name: "A", Domain: "a.example.com"})
		require.NoError(t, err)
		b, err := svc.Create(ctx, tenant.CreateParams{Name: "B", Domain: "b.example.com"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, b.ID, tenant.UpdateParams{Domain: ptr("a.example.com")})
		assert.ErrorIs(t, err, tenant.ErrAlreadyExists)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)
		_, err := svc.Update(ctx, uuid.New(), tenant.UpdateParams{Name: ptr("x")})
		assert.ErrorIs(t, err, tenant.ErrNotFound)
	})

	t.Run("deactivate", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)
		created, err := svc.Create(ctx, tenant.CreateParams{Name: "Acme", Domain: "acme.example.com"})
		require.NoError(t, err)

		got, err := svc.Deactivate(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})
}

func TestServiceDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, rec, _ := newService(t)

	created, err := svc.Create(ctx, tenant.CreateParams{Name: "Acme", Domain: "acme.example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, tenant.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), tenant.ErrNotFound)
	assert.Equal(t, []events.Type{events.TenantCreated, events.TenantDeleted}, rec.Types())
}

func TestServiceList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newService(t)

	for _, d := range []string{"a.example.com", "b.example.com", "c.example.com"} {
		_, err := svc.Create(ctx, tenant.CreateParams{Name: d, Domain: d})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, paging.Request{PageSize: 2, Direction: paging.Forward})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "a.example.com", page.Items[0].Domain)
	assert.True(t, page.HasNextPage)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, events.Event) error {
	return errors.New("broker down")
}

func TestServicePublishFailureDoesNotFailOperation(t *testing.T) {
	t.Parallel()

	svc := tenant.NewService(memstore.New().Tenants(), failingPublisher{}, nil)
	_, err := svc.Create(context.Background(), tenant.CreateParams{Name: "Acme", Domain: "acme.example.com"})
	assert.NoError(t, err)
}
