package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"consulting-backend/internal/domains/admin/model"
	"consulting-backend/internal/infrastructure/metrics"
	"consulting-backend/pkg/cache"
	"consulting-backend/pkg/jwt"
)

const (
	MaxFailedAttempts = 5
	AttemptWindow     = 15 * time.Minute
)

// Credentials of the single admin account. PasswordHash (bcrypt) wins over
// Password when both are set.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

type AuthService struct {
	username string
	hash     []byte
	tokens   *jwt.Manager
	cache    cache.Cache
}

// NewAuthService hashes a plain password once at startup. c may be nil,
// which disables the failed-login lockout.
func NewAuthService(creds Credentials, tokens *jwt.Manager, c cache.Cache) (*AuthService, error) {
	hash := []byte(creds.PasswordHash)
	if len(hash) == 0 {
		if creds.Password == "" {
			return nil, fmt.Errorf("admin password not configured")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}

	return &AuthService{username: creds.Username, hash: hash, tokens: tokens, cache: c}, nil
}

// Login checks the credentials and issues a token pair. Failures are
// counted per client IP; after MaxFailedAttempts inside AttemptWindow the
// caller is locked out until the window expires.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest, clientIP string) (*model.TokenResponse, error) {
	key := attemptKey(clientIP)

	if retryAfter, locked := s.lockedOut(ctx, key); locked {
		metrics.RecordAuthAttempt(false)
		return nil, model.NewTooManyAttemptsError(retryAfter)
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.hash, []byte(req.Password))
	if !userOK || passErr != nil {
		metrics.RecordAuthAttempt(false)
		s.recordFailure(ctx, key, clientIP)
		return nil, model.ErrInvalidCredentials
	}

	metrics.RecordAuthAttempt(true)
	if s.cache != nil {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Msg("reset login attempts failed")
		}
	}

	return s.issue(s.username)
}

// Refresh trades a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, &model.AdminError{Code: model.ErrCodeInvalidToken, Message: model.ErrInvalidToken.Message, Err: err}
	}
	if claims.Username != s.username {
		return nil, model.ErrInvalidToken
	}
	return s.issue(claims.Username)
}

func (s *AuthService) issue(username string) (*model.TokenResponse, error) {
	access, err := s.tokens.GenerateAccessToken(username, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(username)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		Username:     username,
	}, nil
}

func (s *AuthService) lockedOut(ctx context.Context, key string) (time.Duration, bool) {
	if s.cache == nil {
		return 0, false
	}
	var attempts int64
	found, err := s.cache.Get(ctx, key, &attempts)
	if err != nil || !found || attempts < MaxFailedAttempts {
		return 0, false
	}
	ttl, err := s.cache.TTL(ctx, key)
	if err != nil || ttl <= 0 {
		ttl = AttemptWindow
	}
	return ttl, true
}

func (s *AuthService) recordFailure(ctx context.Context, key, clientIP string) {
	if s.cache == nil {
		return
	}
	attempts, err := s.cache.Increment(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("count failed login failed")
		return
	}
	if attempts == 1 {
		if err := s.cache.Expire(ctx, key, AttemptWindow); err != nil {
			log.Warn().Err(err).Msg("set login attempt window failed")
		}
	}
	if attempts >= MaxFailedAttempts {
		log.Warn().
			Str("ip", clientIP).
			Int64("attempts", attempts).
			Msg("admin login locked out")
	}
}

func attemptKey(clientIP string) string {
	return "login_failed:" + clientIP
}
