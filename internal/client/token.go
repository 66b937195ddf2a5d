package client

import (
	"context"
	"sync"
	"time"

	jwttoken "legatia/internal/jwt_token"
	id "legatia/pkg/domain"
)

// TokenSource supplies the bearer token attached to every remote call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a token obtained out of band.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// JWTSource mints short-lived access tokens for one user and reuses each
// until it is within a minute of expiring.
type JWTSource struct {
	jwt    *jwttoken.JWTService
	userID id.UserID
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

func NewJWTSource(jwt *jwttoken.JWTService, userID id.UserID, ttl time.Duration) *JWTSource {
	return &JWTSource{jwt: jwt, userID: userID, ttl: ttl, now: time.Now}
}

func (s *JWTSource) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Add(time.Minute).Before(s.expires) {
		return s.token, nil
	}
	token, err := s.jwt.GenerateAccessToken(s.userID, s.ttl)
	if err != nil {
		return "", err
	}
	s.token = token
	s.expires = now.Add(s.ttl)
	return token, nil
}
