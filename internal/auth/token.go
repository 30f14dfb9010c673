// Package auth verifies the bearer tokens issued by the external
// credential service. Only verification lives here; issuing real tokens
// is not this system's concern, SignToken exists for tests and dev
// tooling.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Niranjan-NN/stream360/internal/domain"
)

var ErrInvalidToken = errors.New("token is not valid")

// Claims carried by a stream360 token: subject is the user id, plus the
// display attributes the membership reads resolve against.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ParseToken verifies an HS256 token and returns the user it identifies.
func ParseToken(secret, tokenString string) (*domain.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &domain.User{
		ID:    domain.UserID(claims.Subject),
		Name:  claims.Name,
		Email: claims.Email,
	}, nil
}

// SignToken mints an HS256 token for user, valid for ttl.
func SignToken(secret string, user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
