package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sketchdeck/sketchdeck/backend-go/internal/typeid"
)

// Service mints and validates the session tokens that gate the WebSocket
// endpoint. There is no user store here; identity beyond the session is
// an external concern.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service with the given HMAC secret.
func NewService(secret string) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}
}

// TokenResult is the response for a freshly minted session.
type TokenResult struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}

// CreateSession mints a new session id and its signed token.
func (s *Service) CreateSession() (*TokenResult, error) {
	sessionID := typeid.NewSessionID()
	token, err := s.issueToken(sessionID)
	if err != nil {
		return nil, err
	}
	return &TokenResult{SessionID: sessionID, Token: token}, nil
}

// ValidateToken parses a token and returns the session id it carries.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sessionID, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid token subject")
	}
	if err := typeid.Validate(sessionID, typeid.PrefixSession); err != nil {
		return "", err
	}

	return sessionID, nil
}

func (s *Service) issueToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
