package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identikit/pkg/logger"
	"github.com/dmitrymomot/identikit/pkg/paging"
	"github.com/dmitrymomot/identikit/svc/events"
)

// CreateParams describes a new tenant.
type CreateParams struct {
	Name   string
	Domain string
}

// UpdateParams carries a partial update. Nil fields are left unchanged.
type UpdateParams struct {
	Name     *string
	Domain   *string
	IsActive *bool
}

// Service implements tenant lifecycle operations on top of a Repository.
type Service struct {
	repo   Repository
	events events.Publisher
	log    *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, pub events.Publisher, log *slog.Logger, opts ...Option) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = logger.Discard()
	}
	s := &Service{
		repo:   repo,
		events: pub,
		log:    log.With(logger.Component("tenant")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers an active tenant. A domain already in use yields
// ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Tenant, error) {
	if _, err := s.repo.GetByDomain(ctx, p.Domain); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check tenant domain: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate tenant id: %w", err)
	}
	now := s.now().UTC()
	t := &Tenant{
		ID:        id,
		Name:      p.Name,
		Domain:    p.Domain,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "tenant created", logger.TenantID(t.ID), slog.String("domain", t.Domain))
	s.publish(ctx, events.New(events.TenantCreated, "", payload(t)))
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

// Update merges the non-nil fields of p and always refreshes UpdatedAt.
// Moving to a domain owned by another tenant yields ErrAlreadyExists.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]events.Change)
	if p.Name != nil && *p.Name != t.Name {
		changes["name"] = events.Change{Old: t.Name, New: *p.Name}
		t.Name = *p.Name
	}
	if p.Domain != nil && *p.Domain != t.Domain {
		other, err := s.repo.GetByDomain(ctx, *p.Domain)
		switch {
		case err == nil && other.ID != t.ID:
			return nil, ErrAlreadyExists
		case err != nil && !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("check tenant domain: %w", err)
		}
		changes["domain"] = events.Change{Old: t.Domain, New: *p.Domain}
		t.Domain = *p.Domain
	}
	if p.IsActive != nil && *p.IsActive != t.IsActive {
		changes["is_active"] = events.Change{
			Old: strconv.FormatBool(t.IsActive),
			New: strconv.FormatBool(*p.IsActive),
		}
		t.IsActive = *p.IsActive
	}
	t.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "tenant updated", logger.TenantID(t.ID), slog.Int("changes", len(changes)))
	s.publish(ctx, events.New(events.TenantUpdated, "", events.TenantUpdatedPayload{
		TenantPayload: payload(t),
		Changes:       changes,
	}))
	return t, nil
}

// Deactivate marks the tenant inactive so requests can no longer be routed
// to its schema. The data is kept.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	inactive := false
	return s.Update(ctx, id, UpdateParams{IsActive: &inactive})
}

// Delete removes the tenant and everything stored in its schema.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "tenant deleted", logger.TenantID(id))
	s.publish(ctx, events.New(events.TenantDeleted, "", payload(t)))
	return nil
}

// List returns one page of tenants ordered by ID.
func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[Tenant], error) {
	return s.repo.List(ctx, req)
}

// publish never fails the operation; the change is already committed.
func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.ErrorContext(ctx, "failed to publish event",
			logger.EventType(string(e.Type)),
			logger.MessageID(e.ID),
			logger.Error(err),
		)
	}
}

func payload(t *Tenant) events.TenantPayload {
	return events.TenantPayload{
		TenantID: t.ID,
		Name:     t.Name,
		Domain:   t.Domain,
		IsActive: t.IsActive,
	}
}
