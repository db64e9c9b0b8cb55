package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 signs and verifies session tokens with a shared secret. Only the
// issuing process needs the key, so there is no key distribution.
type HS256 struct {
	key    []byte
	issuer string
	now    func() time.Time
}

// NewHS256 returns an HS256 signer/verifier. The key must be at least 32
// bytes.
func NewHS256(key []byte, issuer string) (*HS256, error) {
	if len(key) < 32 {
		return nil, errors.New("jwtx: HS256 key must be at least 32 bytes")
	}
	return &HS256{key: key, issuer: issuer, now: time.Now}, nil
}

func (h *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Issuer is the iss value Verify accepts. Tokens must be minted with it.
func (h *HS256) Issuer() string { return h.issuer }

// Sign turns claims into a compact JWT.
func (h *HS256) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.key)
}

// Verify validates the signature, issuer and validity window and returns the
// claims.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return h.key, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	case err != nil:
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(h.now()); err != nil {
		return Claims{}, err
	}
	if claims.SID == "" {
		return Claims{}, ErrMissingSID
	}
	return claims, nil
}
