// Package token issues and validates the signed bearer tokens that stand in
// for sessions. No session state is kept server-side: a token is valid iff
// its signature checks out against the issuer's secret and it has not
// expired. Rotating the secret invalidates every outstanding token.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrInvalid = errors.New("invalid token")
	ErrExpired = errors.New("token expired")
)

type claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"uid"`
}

// Issuer signs and verifies tokens with a fixed secret and validity duration.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue mints a token binding userID with an expiry of now + ttl.
func (i *Issuer) Issue(userID uint) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})
	return t.SignedString(i.secret)
}

// Validate returns the user id carried by a well-formed, unexpired token.
// Expired tokens yield ErrExpired; anything else wrong with the token
// (tampering, malformed structure, wrong signing method) yields ErrInvalid.
func (i *Issuer) Validate(tokenString string) (uint, error) {
	c := &claims{}
	t, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, ErrInvalid
	}
	if !t.Valid || c.UserID == 0 {
		return 0, ErrInvalid
	}
	return c.UserID, nil
}
