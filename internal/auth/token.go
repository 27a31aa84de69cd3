// Package auth implements token issuance/verification and password hashing.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token fails signature, structure
	// or expiry checks. Verification is all-or-nothing.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingSubject is returned when a correctly signed token carries
	// no subject claim.
	ErrMissingSubject = errors.New("token has no subject claim")
)

// Claims is the verified identity carried by a bearer token.
type Claims struct {
	UserID    uint
	ExpiresAt time.Time
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// It is stateless: any structurally valid, correctly signed, unexpired
// token is trusted, so tokens stay short-lived.
type TokenService struct {
	secret   []byte
	method   jwt.SigningMethod
	ttl      time.Duration
	issuer   string
	audience string
}

// NewTokenService builds a TokenService from an explicit secret, an HMAC
// algorithm identifier (HS256/HS384/HS512) and a token lifetime. An unknown
// algorithm is a construction error so misconfiguration fails at startup,
// never lazily per-request.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", algorithm)
	}
	if ttl <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	return &TokenService{
		secret:   []byte(secret),
		method:   method,
		ttl:      ttl,
		issuer:   "pulseboard-api",
		audience: "pulseboard-client",
	}, nil
}

// Issue creates a signed token whose subject is the given user ID.
func (s *TokenService) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": s.issuer,
		"aud": s.audience,
		"exp": now.Add(s.ttl).Unix(),
		"iat": now.Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates raw, returning the embedded claims.
// It fails with ErrInvalidToken for a bad signature, wrong signing method,
// malformed structure or elapsed expiry, and with ErrMissingSubject when
// the signed payload carries no usable subject.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrMissingSubject
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, ErrInvalidToken
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    uint(userID),
		ExpiresAt: exp.Time,
	}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
