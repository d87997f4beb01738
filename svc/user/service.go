package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/identikit/pkg/logger"
	"github.com/dmitrymomot/identikit/pkg/paging"
	"github.com/dmitrymomot/identikit/svc/events"
)

// CreateParams describes a new user. TenantID is set from the routed tenant.
type CreateParams struct {
	Email    string
	Username string
	Password string
	FullName string
	TenantID *uuid.UUID
}

// UpdateParams carries a partial profile update. Nil fields are unchanged.
type UpdateParams struct {
	Email    *string
	Username *string
	FullName *string
}

// Deps groups the collaborators of a Service.
type Deps struct {
	Users         Repository
	RefreshTokens RefreshTokenStore
	Tokens        TokenIssuer
	Hasher        PasswordHasher
	Events        events.Publisher
	Logger        *slog.Logger
	// Schema is recorded on published events.
	Schema string
}

// Service implements the user lifecycle and authentication flows for one
// schema.
type Service struct {
	users   Repository
	refresh RefreshTokenStore
	tokens  TokenIssuer
	hasher  PasswordHasher
	events  events.Publisher
	log     *slog.Logger
	schema  string
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(d Deps, opts ...Option) *Service {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}
	s := &Service{
		users:   d.Users,
		refresh: d.RefreshTokens,
		tokens:  d.Tokens,
		hasher:  d.Hasher,
		events:  d.Events,
		log:     d.Logger.With(logger.Component("user")),
		schema:  d.Schema,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers an active user with the default role.
// Email and username must both be unused in the schema.
func (s *Service) Create(ctx context.Context, p CreateParams) (*User, error) {
	if err := s.ensureFree(ctx, uuid.Nil, &p.Email, &p.Username); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	u := &User{
		ID:           id,
		Email:        p.Email,
		Username:     p.Username,
		PasswordHash: hash,
		TenantID:     p.TenantID,
		FullName:     p.FullName,
		Role:         DefaultRole,
		Permissions:  []string{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user created", logger.UserID(u.ID), logger.Schema(s.schema))
	s.publish(ctx, events.New(events.UserCreated, s.schema, payload(u)))
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// Update merges the non-nil fields of p and always refreshes UpdatedAt.
func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var email, username *string
	if p.Email != nil && *p.Email != u.Email {
		email = p.Email
	}
	if p.Username != nil && *p.Username != u.Username {
		username = p.Username
	}
	if err := s.ensureFree(ctx, u.ID, email, username); err != nil {
		return nil, err
	}

	changes := make(map[string]events.Change)
	if email != nil {
		changes["email"] = events.Change{Old: u.Email, New: *email}
		u.Email = *email
	}
	if username != nil {
		changes["username"] = events.Change{Old: u.Username, New: *username}
		u.Username = *username
	}
	if p.FullName != nil && *p.FullName != u.FullName {
		changes["full_name"] = events.Change{Old: u.FullName, New: *p.FullName}
		u.FullName = *p.FullName
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user updated", logger.UserID(u.ID), slog.Int("changes", len(changes)))
	s.publish(ctx, events.New(events.UserUpdated, s.schema, events.UserUpdatedPayload{
		UserPayload: payload(u),
		Changes:     changes,
	}))
	return u, nil
}

// Delete removes the user and revokes all of their refresh tokens.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.refresh.RevokeAll(ctx, id); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	s.log.InfoContext(ctx, "user deleted", logger.UserID(id))
	return nil
}

// List returns one page of users ordered by ID.
func (s *Service) List(ctx context.Context, req paging.Request) (paging.Page[User], error) {
	return s.users.List(ctx, req)
}

// Login verifies credentials and issues a token pair. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}
	if u.PasswordHash == "" || s.hasher.Compare(u.PasswordHash, password) != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return TokenPair{}, ErrUserInactive
	}

	pair, err := s.issue(ctx, u)
	if err != nil {
		return TokenPair{}, err
	}

	s.log.InfoContext(ctx, "user logged in", logger.UserID(u.ID))
	s.publish(ctx, events.New(events.UserLoggedIn, s.schema, events.UserLoggedInPayload{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
	}))
	return pair, nil
}

// Refresh exchanges a stored refresh token for a new pair. The presented
// token is consumed before anything else, so each refresh token works once
// even under concurrent use.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, errors.Join(ErrInvalidRefreshToken, err)
	}

	ok, err := s.refresh.Consume(ctx, claims.TokenID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("consume refresh token: %w", err)
	}
	if !ok {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, ErrNotFound) {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return TokenPair{}, err
	}
	if !u.IsActive {
		return TokenPair{}, ErrUserInactive
	}

	return s.issue(ctx, u)
}

func (s *Service) issue(ctx context.Context, u *User) (TokenPair, error) {
	issued, err := s.tokens.Issue(u)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}
	if err := s.refresh.Store(ctx, u.ID, issued.RefreshID, issued.RefreshExpiresAt); err != nil {
		return TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}
	return TokenPair{
		AccessToken:  issued.AccessToken,
		RefreshToken: issued.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(issued.AccessExpiresAt.Sub(s.now()).Seconds()),
	}, nil
}

// ensureFree rejects email or username values owned by a user other than
// self. Nil values are not checked.
func (s *Service) ensureFree(ctx context.Context, self uuid.UUID, email, username *string) error {
	if email != nil {
		other, err := s.users.GetByEmail(ctx, *email)
		if err == nil && other.ID != self {
			return ErrEmailTaken
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("check email: %w", err)
		}
	}
	if username != nil {
		other, err := s.users.GetByUsername(ctx, *username)
		if err == nil && other.ID != self {
			return ErrUsernameTaken
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("check username: %w", err)
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.ErrorContext(ctx, "failed to publish event",
			logger.EventType(string(e.Type)),
			logger.MessageID(e.ID),
			logger.Error(err),
		)
	}
}

func payload(u *User) events.UserPayload {
	return events.UserPayload{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Username: u.Username,
		FullName: u.FullName,
	}
}
