// Package auth implements credential hashing, bearer token issuance, and
// server-side sessions. It is the single place that knows how a request is
// tied back to a user.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SessionCookie is the cookie carrying the session ID.
	SessionCookie = "inkwell_session"
	// SessionTTL matches the bearer token lifetime.
	SessionTTL = 7 * 24 * time.Hour

	tokenIssuer   = "inkwell-api"
	tokenAudience = "inkwell-client"
)

// Service provides hashing, token, and session capabilities. Sessions live in
// Redis when available; otherwise they fall back to an in-process map so local
// development works without a Redis instance.
type Service struct {
	secret string
	redis  *redis.Client

	mu    sync.Mutex
	local map[string]localSession
}

type localSession struct {
	userID  uint
	expires time.Time
}

// NewService returns an auth service signing tokens with secret and storing
// sessions in rdb (which may be nil).
func NewService(secret string, rdb *redis.Client) *Service {
	return &Service{
		secret: secret,
		redis:  rdb,
		local:  make(map[string]localSession),
	}
}

// Hash derives a one-way digest from a plaintext password.
func (s *Service) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest.
func (s *Service) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// IssueToken creates a signed bearer token for the given user.
func (s *Service) IssueToken(userID uint, name string) (string, error) {
	if s.secret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"name": name,
		"iss":  tokenIssuer,
		"aud":  tokenAudience,
		"exp":  now.Add(SessionTTL).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// ParseToken validates a bearer token and returns the user ID it carries.
func (s *Service) ParseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, fmt.Errorf("invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, fmt.Errorf("invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in token")
	}
	return uint(userID), nil
}

// generateJTI creates a unique token ID to prevent replay.
func (s *Service) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

func sessionKey(id string) string {
	return "session:" + id
}

// CreateSession registers a new server-side session for userID and returns its ID.
func (s *Service) CreateSession(ctx context.Context, userID uint) (string, error) {
	id := uuid.New().String()

	if s.redis != nil {
		err := s.redis.Set(ctx, sessionKey(id),
			strconv.FormatUint(uint64(userID), 10), SessionTTL).Err()
		if err != nil {
			return "", err
		}
		return id, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.local[id] = localSession{userID: userID, expires: time.Now().Add(SessionTTL)}
	return id, nil
}

// ResolveSession returns the user ID behind a session ID, if the session exists.
func (s *Service) ResolveSession(ctx context.Context, id string) (uint, bool) {
	if id == "" {
		return 0, false
	}

	if s.redis != nil {
		val, err := s.redis.Get(ctx, sessionKey(id)).Result()
		if err != nil {
			return 0, false
		}
		userID, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return 0, false
		}
		return uint(userID), true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.local[id]
	if !ok || time.Now().After(entry.expires) {
		delete(s.local, id)
		return 0, false
	}
	return entry.userID, true
}

// DestroySession terminates the session with the given ID.
func (s *Service) DestroySession(ctx context.Context, id string) {
	if id == "" {
		return
	}

	if s.redis != nil {
		s.redis.Del(ctx, sessionKey(id))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.local, id)
}
