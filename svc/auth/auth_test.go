package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/identikit/pkg/jwt"
	"github.com/dmitrymomot/identikit/svc/auth"
	"github.com/dmitrymomot/identikit/svc/user"
)

func testConfig() auth.Config {
	return auth.Config{
		SecretKey:       "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
		Issuer:          "identikit-test",
	}
}

func testUser() *user.User {
	tenantID := uuid.New()
	return &user.User{
		ID:          uuid.New(),
		Email:       "ada@example.com",
		Username:    "ada",
		FullName:    "Ada Lovelace",
		TenantID:    &tenantID,
		Role:        user.DefaultRole,
		Permissions: []string{"users:read"},
		IsActive:    true,
	}
}

func TestTokenService(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.SecretKey = ""
		_, err := auth.NewTokenService(cfg)
		assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
	})

	t.Run("issues access and refresh tokens", func(t *testing.T) {
		t.Parallel()
		svc, err := auth.NewTokenService(testConfig())
		require.NoError(t, err)
		u := testUser()

		issued, err := svc.Issue(u)
		require.NoError(t, err)
		assert.NotEmpty(t, issued.RefreshID)
		assert.True(t, issued.RefreshExpiresAt.After(issued.AccessExpiresAt))

		access, err := svc.ParseAccess(issued.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID.String(), access.Subject)
		assert.Equal(t, u.Email, access.Email)
		assert.Equal(t, u.Username, access.Username)
		assert.Equal(t, u.FullName, access.FullName)
		assert.Equal(t, u.TenantID.String(), access.TenantID)
		assert.Equal(t, "user", access.Role)
		assert.Equal(t, []string{"users:read"}, access.Permissions)
		assert.Equal(t, auth.TokenTypeAccess, access.Type)
		assert.Equal(t, "identikit-test", access.Issuer)
		assert.NotEmpty(t, access.ID)

		refresh, err := svc.ParseRefresh(issued.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID, refresh.UserID)
		assert.Equal(t, issued.RefreshID, refresh.TokenID)
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		t.Parallel()
		svc, err := auth.NewTokenService(testConfig())
		require.NoError(t, err)
		issued, err := svc.Issue(testUser())
		require.NoError(t, err)

		_, err = svc.ParseRefresh(issued.AccessToken)
		assert.ErrorIs(t, err, auth.ErrWrongTokenType)

		_, err = svc.ParseAccess(issued.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrWrongTokenType)
	})

	t.Run("rejects tokens signed with another key", func(t *testing.T) {
		t.Parallel()
		svc, err := auth.NewTokenService(testConfig())
		require.NoError(t, err)
		cfg := testConfig()
		cfg.SecretKey = "another-secret-another-secret-00"
		other, err := auth.NewTokenService(cfg)
		require.NoError(t, err)

		issued, err := other.Issue(testUser())
		require.NoError(t, err)

		_, err = svc.ParseRefresh(issued.RefreshToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.RefreshTokenTTL = -time.Minute
		svc, err := auth.NewTokenService(cfg)
		require.NoError(t, err)

		issued, err := svc.Issue(testUser())
		require.NoError(t, err)

		_, err = svc.ParseRefresh(issued.RefreshToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("every refresh token has its own id", func(t *testing.T) {
		t.Parallel()
		svc, err := auth.NewTokenService(testConfig())
		require.NoError(t, err)
		u := testUser()

		a, err := svc.Issue(u)
		require.NoError(t, err)
		b, err := svc.Issue(u)
		require.NoError(t, err)
		assert.NotEqual(t, a.RefreshID, b.RefreshID)
	})
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := auth.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, h.Compare(hash, "s3cret-pass"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), auth.ErrPasswordMismatch)
	assert.Error(t, h.Compare("not-a-hash", "s3cret-pass"))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	svc, err := auth.NewTokenService(testConfig())
	require.NoError(t, err)
	issued, err := svc.Issue(testUser())
	require.NoError(t, err)

	var seen *auth.AccessClaims
	h := auth.Middleware(svc, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.ClaimsFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "no header", header: "", want: false},
		{name: "access token", header: "Bearer " + issued.AccessToken, want: true},
		{name: "refresh token", header: "Bearer " + issued.RefreshToken, want: false},
		{name: "garbage", header: "Bearer nope", want: false},
	}
	for _, tt := range tests {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, tt.want, seen != nil, tt.name)
	}
}
