package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quizboard/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService signs and verifies the tokens players present at the
// transport boundary. HS256 with a shared secret and a fixed expiry
// window.
type AuthService struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthService creates an auth service with the given secret and
// token lifetime
func NewAuthService(secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// SignToken issues a token carrying the user's identity claims
func (s *AuthService) SignToken(username, email, subjectID string) (string, error) {
	now := time.Now()
	claims := &model.UserClaims{
		Username:  username,
		Email:     email,
		SubjectID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken validates a token and returns its claims
func (s *AuthService) VerifyToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
