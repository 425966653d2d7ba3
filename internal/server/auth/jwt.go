// Package auth implements the two cryptographic building blocks of the
// service: bcrypt password hashing and HS256 bearer-token signing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nestjs-store-microservices/auth-ms/internal/common"
)

// Claims is the payload signed into every bearer token: the standard
// registered claims plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// TokenCodec signs and verifies bearer tokens. Secret material and the
// validity window are injected once at construction; nothing here reads
// ambient configuration.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: ttl}
}

// Sign mints a fresh token for userID expiring after the configured TTL.
// Each token carries a unique jti, so two tokens minted for the same user in
// the same second still differ.
func (c *TokenCodec) Sign(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID: userID,
	})

	return token.SignedString(c.secret)
}

// Verify decodes and validates a token, enforcing signature and expiry.
// Malformed, tampered and expired tokens all come back as
// common.ErrInvalidToken; callers cannot tell which check failed.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
