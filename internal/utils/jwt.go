package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel error for any verification failure
	"time"   // expiry computation

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned by ParseAccessToken for every verification
// failure: bad signature, malformed token, wrong algorithm or elapsed
// expiry.  Callers treat all of these identically (401), so the cause is
// deliberately not distinguished.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity claim embedded in every access token.  The email
// is the only application claim; issued-at and expiry ride in the
// registered claims.  The claim is stateless: nothing about it is persisted
// server-side, and it is trusted only for the lifetime of one request.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AccessToken is a signed JWT along with its expiry.  Access tokens are
// sent in the Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT carrying the given email.
// No proof of ownership of the email is required here: the issuance
// endpoint accepts whatever identity the client submits.  That trust
// boundary is part of the documented contract, not something this function
// should tighten.
func NewAccessToken(secret, email string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a raw token string
// and returns its claims.  The check is side-effect free.  Tokens signed
// with any algorithm other than HMAC are rejected outright.
func ParseAccessToken(secret, raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
