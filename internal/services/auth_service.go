package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/config"
)

const sessionKeyPrefix = "session:"

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrAuthDisabled    = errors.New("admin password is not configured")
)

// AuthService issues and validates opaque admin session tokens stored in
// Redis. A single shared admin password gates the whole admin surface.
type AuthService struct {
	redis      *redis.Client
	password   string
	sessionTTL time.Duration
	log        *logrus.Logger
}

func NewAuthService(redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *AuthService {
	return &AuthService{
		redis:      redisClient,
		password:   cfg.AdminPassword,
		sessionTTL: time.Duration(cfg.SessionTTLHours) * time.Hour,
		log:        log,
	}
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Login verifies the admin password and returns a fresh session token.
func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if s.password == "" {
		return "", ErrAuthDisabled
	}

	// Hash both sides so the comparison is constant-time regardless of length
	want := sha256.Sum256([]byte(s.password))
	got := sha256.Sum256([]byte(password))
	if subtle.ConstantTimeCompare(want[:], got[:]) != 1 {
		return "", ErrInvalidPassword
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.redis.Set(ctx, sessionKeyPrefix+token, time.Now().UTC().Format(time.RFC3339), s.sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	s.log.Info("Admin session created")
	return token, nil
}

// Validate reports whether the token maps to a live session. Each hit
// refreshes the TTL so active admins are not logged out mid-session.
func (s *AuthService) Validate(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	ok, err := s.redis.Expire(ctx, sessionKeyPrefix+token, s.sessionTTL).Result()
	if err != nil {
		s.log.WithError(err).Warn("Session lookup failed")
		return false
	}
	return ok
}

// Logout revokes the session token.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.redis.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		s.log.WithError(err).Warn("Failed to delete session")
	}
}
