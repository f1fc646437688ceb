package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"consulting-backend/internal/domains/admin/model"
	"consulting-backend/internal/domains/admin/service"
	"consulting-backend/pkg/cache"
	"consulting-backend/pkg/jwt"
)

func newAuth(t *testing.T, c cache.Cache) (*service.AuthService, *jwt.Manager) {
	t.Helper()
	tokens := jwt.NewManager("test-secret", time.Hour, 0)
	auth, err := service.NewAuthService(service.Credentials{Username: "admin", Password: "s3cret"}, tokens, c)
	require.NoError(t, err)
	return auth, tokens
}

func TestLogin_IssuesAdminTokens(t *testing.T) {
	auth, tokens := newAuth(t, nil)

	resp, err := auth.Login(context.Background(), model.LoginRequest{Username: "admin", Password: "s3cret"}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)

	_, err = tokens.ValidateRefreshToken(resp.RefreshToken)
	assert.NoError(t, err)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	auth, _ := newAuth(t, nil)
	ctx := context.Background()

	_, err := auth.Login(ctx, model.LoginRequest{Username: "admin", Password: "wrong"}, "ip")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = auth.Login(ctx, model.LoginRequest{Username: "root", Password: "s3cret"}, "ip")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_AcceptsBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	auth, err := service.NewAuthService(service.Credentials{
		Username:     "admin",
		Password:     "ignored",
		PasswordHash: string(hash),
	}, jwt.NewManager("k", 0, 0), nil)
	require.NoError(t, err)

	_, err = auth.Login(context.Background(), model.LoginRequest{Username: "admin", Password: "hashed-pass"}, "ip")
	assert.NoError(t, err)

	_, err = service.NewAuthService(service.Credentials{Username: "admin", PasswordHash: "not-bcrypt"}, jwt.NewManager("k", 0, 0), nil)
	assert.Error(t, err)
}

func TestLogin_LocksOutAfterRepeatedFailures(t *testing.T) {
	mem := cache.NewMemory()
	auth, _ := newAuth(t, mem)
	ctx := context.Background()
	bad := model.LoginRequest{Username: "admin", Password: "nope"}

	for i := 0; i < service.MaxFailedAttempts; i++ {
		_, err := auth.Login(ctx, bad, "1.2.3.4")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	}

	_, err := auth.Login(ctx, model.LoginRequest{Username: "admin", Password: "s3cret"}, "1.2.3.4")
	require.Error(t, err)
	assert.Equal(t, model.ErrCodeTooManyAttempts, model.Code(err))

	var ae *model.AdminError
	require.ErrorAs(t, err, &ae)
	assert.Greater(t, ae.RetryAfter, time.Duration(0))

	// other callers are unaffected
	_, err = auth.Login(ctx, model.LoginRequest{Username: "admin", Password: "s3cret"}, "5.6.7.8")
	assert.NoError(t, err)
}

func TestLogin_SuccessResetsFailureCount(t *testing.T) {
	mem := cache.NewMemory()
	auth, _ := newAuth(t, mem)
	ctx := context.Background()

	for i := 0; i < service.MaxFailedAttempts-1; i++ {
		_, _ = auth.Login(ctx, model.LoginRequest{Username: "admin", Password: "nope"}, "ip")
	}
	_, err := auth.Login(ctx, model.LoginRequest{Username: "admin", Password: "s3cret"}, "ip")
	require.NoError(t, err)

	_, err = auth.Login(ctx, model.LoginRequest{Username: "admin", Password: "nope"}, "ip")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	auth, tokens := newAuth(t, nil)
	ctx := context.Background()

	refresh, err := tokens.GenerateRefreshToken("admin")
	require.NoError(t, err)
	resp, err := auth.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	access, err := tokens.GenerateAccessToken("admin", model.RoleAdmin)
	require.NoError(t, err)
	_, err = auth.Refresh(ctx, access)
	assert.Equal(t, model.ErrCodeInvalidToken, model.Code(err))

	other, err := tokens.GenerateRefreshToken("mallory")
	require.NoError(t, err)
	_, err = auth.Refresh(ctx, other)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}
