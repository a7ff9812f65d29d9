package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenIsInvalid = errors.New("session token is invalid")
	ErrSecretIsEmpty  = errors.New("token secret is empty")
)

// Claims is the payload of a session token. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrSecretIsEmpty
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "cargo",
		now:    time.Now,
	}, nil
}

// Issue returns a signed token for the user together with its expiry.
func (i *TokenIssuer) Issue(userID, role string) (string, time.Time, error) {
	now := i.now().UTC()
	exp := now.Add(i.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies signature, algorithm, issuer and expiry and returns the claims.
func (i *TokenIssuer) Parse(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return i.secret, nil
	},
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrTokenIsInvalid
	}
	return &claims, nil
}
