package auth

import (
	"fmt"
	"time"

	"codeberg.org/rolodex/server/rolodex/users"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// fallback lifetime for access tokens when the caller passes none
	defaultAccessTokenTTL = 15 * time.Minute

	// email confirmation/reset tokens live considerably longer
	emailTokenTTL = 7 * 24 * time.Hour
)

// TokenCodec signs and verifies claim payloads with a single
// process-wide secret. Constructed once at startup and shared.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
}

// creates a codec for the given HMAC algorithm (HS256, HS384 or HS512)
func NewTokenCodec(secret, algorithm string) (*TokenCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret must not be empty")
	}

	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %q", algorithm)
	}

	return &TokenCodec{
		secret: []byte(secret),
		method: method,
	}, nil
}

// issues a signed access token for the user, valid for ttl
// (defaultAccessTokenTTL when ttl <= 0)
func (c *TokenCodec) IssueAccessToken(user *users.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAccessTokenTTL
	}

	now := time.Now()

	claims := AccessClaims{
		UserID: user.ID,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// issues a signed email confirmation/reset token for the address
func (c *TokenCodec) IssueEmailToken(email string) (string, error) {
	now := time.Now()

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(emailTokenTTL)),
		},
	}

	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode verifies the signature and expiry of a token and returns its
// claims. Tampered, malformed and expired tokens all fail with the same
// ErrInvalidToken so the reason is never leaked to clients.
func (c *TokenCodec) Decode(raw string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &AccessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return c.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
